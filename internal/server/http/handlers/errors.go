package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/server/http/dto"
)

var errMalformedBody = fmt.Errorf("%w: malformed request body", domainErrors.ErrInvalidArgument)

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: specialisations must precede the categories they wrap.
var errorMappings = []errorMapping{
	{domainErrors.ErrInsufficientFunds, http.StatusBadRequest, "insufficient_funds"},
	{domainErrors.ErrAlreadyProcessed, http.StatusBadRequest, "already_processed"},
	{domainErrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domainErrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domainErrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "already_exists"},
	{domainErrors.ErrDuplicateRequest, http.StatusConflict, "duplicate_request"},
}

// statusFor maps a domain error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// respondError writes the JSON error body for err and records it for the
// request logger.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	respondStatus(c, status, code, err)
}

func respondStatus(c *gin.Context, status int, code string, err error) {
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	} else {
		_ = c.Error(err).SetType(gin.ErrorTypePublic)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: code, Message: message})
}
