package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/server/http/dto"
	"github.com/polkiloo/quizwallet/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/quizwallet/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRoute(t, method, path, path, handler, setup, body, headers)
}

func performRoute(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func as(identity model.Identity) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityContextKey, identity)
	}
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentIdentity(c); got.UserID != 0 {
		t.Fatalf("expected zero identity when not set, got %+v", got)
	}

	c.Set(middleware.IdentityContextKey, testhelpers.UserIdentity(42))
	if got := CurrentIdentity(c); got.UserID != 42 {
		t.Fatalf("expected 42, got %d", got.UserID)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_argument"},
		{domainErrors.ErrMissingDestination, http.StatusBadRequest, "invalid_argument"},
		{domainErrors.ErrBelowMinimum, http.StatusBadRequest, "invalid_argument"},
		{domainErrors.ErrInsufficientFunds, http.StatusBadRequest, "insufficient_funds"},
		{fmt.Errorf("accept: %w", domainErrors.ErrAlreadyProcessed), http.StatusBadRequest, "already_processed"},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domainErrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domainErrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{domainErrors.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{domainErrors.ErrDuplicateRequest, http.StatusConflict, "duplicate_request"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.code+"/"+tc.err.Error(), func(t *testing.T) {
			status, code := statusFor(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("expected %d %s, got %d %s", tc.status, tc.code, status, code)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	handler := func(c *gin.Context) { respondError(c, errors.New("pq: connection refused")) }
	resp := performRequest(t, http.MethodGet, "/", handler, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	body := decodeError(t, resp)
	if body.Code != "internal" || body.Message != "internal server error" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestPathID(t *testing.T) {
	var got int64
	handler := func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		got = id
		c.Status(http.StatusOK)
	}

	for _, target := range []string{"/items/abc", "/items/0", "/items/-3"} {
		resp := performRoute(t, http.MethodGet, "/items/:id", target, handler, nil, nil, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.Code)
		}
	}

	resp := performRoute(t, http.MethodGet, "/items/:id", "/items/17", handler, nil, nil, nil)
	if resp.Code != http.StatusOK || got != 17 {
		t.Fatalf("expected id 17, got %d (%d)", got, resp.Code)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
	var decoded dto.TokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || decoded.Token == "" {
		t.Fatalf("expected token in body, got %q (%v)", resp.Body.String(), err)
	}
}

func TestAuthHandlerRegisterPassesCredentialsAndReferral(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password, ReferralCode: "12"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword, referral string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		if referral != "12" {
			t.Fatalf("expected referral code 12, got %q", referral)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	authHeader := resp.Header().Get("Authorization")
	if authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "quizwallet_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named quizwallet_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
		code   string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest, code: "invalid_argument"},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest, code: "invalid_argument"},
		{name: "invalid referral", body: []byte(`{"login":"a","password":"b","refer_code":"x"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidReferral
		}}, status: http.StatusBadRequest, code: "invalid_argument"},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict, code: "already_exists"},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError, code: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if body := decodeError(t, resp); body.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer "+testhelpers.TokenFor(testhelpers.UserIdentity(1)) {
		t.Fatalf("unexpected authorization header %q", got)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(testhelpers.QuizWalletFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade := testhelpers.QuizWalletFacadeStub{HealthErr: errors.New("db down")}
	resp = performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(facade).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var decoded dto.HealthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || decoded.Status != "unavailable" {
		t.Fatalf("unexpected health body %q", resp.Body.String())
	}
}
