package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context.
// A missing identity yields the zero value which every operation rejects.
func CurrentIdentity(c *gin.Context) model.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, fmt.Errorf("%w: %v", errMalformedBody, err))
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, domainErrors.ErrInvalidArgument)
		return 0, false
	}
	return id, true
}
