package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, issuer, subject string, audience ...string) string {
	t.Helper()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  audience,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: "Lerato",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticator_Middleware(t *testing.T) {
	auth := NewAuthenticator([]JWTIssuer{
		{Issuer: "line", Secret: []byte("line-secret")},
		{Issuer: "twitter", Secret: []byte("tw-secret")},
	}, "ugym", nil)

	var seen AuthenticatedUser
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "nope", "line", "u1", "ugym"), http.StatusUnauthorized},
		{"wrong audience", "Bearer " + signToken(t, "line-secret", "line", "u1", "other"), http.StatusUnauthorized},
		{"issuer mismatch", "Bearer " + signToken(t, "line-secret", "twitter", "u1", "ugym"), http.StatusUnauthorized},
		{"second issuer", "Bearer " + signToken(t, "tw-secret", "twitter", "u2", "ugym"), http.StatusNoContent},
		{"valid", "Bearer " + signToken(t, "line-secret", "line", "u1", "ugym"), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, "u1", seen.ID)
	assert.Equal(t, "Lerato", seen.Name)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "tokens refill over time")

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/gyms", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestNewRateLimiter_Disabled(t *testing.T) {
	var limiter *RateLimiter = NewRateLimiter(0, 10)
	assert.Nil(t, limiter)

	called := false
	handler := limiter.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", publicdomain.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", admindomain.ErrValidation), http.StatusBadRequest},
		{publicdomain.ErrNotFound, http.StatusNotFound},
		{admindomain.ErrNotFound, http.StatusNotFound},
		{publicdomain.ErrEmptyCart, http.StatusConflict},
		{admindomain.ErrDuplicate, http.StatusConflict},
		{errors.New("mongo exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestWriteDomainError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(nil, rec, errors.New("connection refused 10.0.0.5"), "failed to load cart")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to load cart"}`, rec.Body.String())
}

func TestParseOptionalFloat(t *testing.T) {
	v, err := ParseOptionalFloat("minPrice", "")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseOptionalFloat("minPrice", " 250.5 ")
	require.NoError(t, err)
	assert.Equal(t, 250.5, *v)

	for _, bad := range []string{"abc", "NaN", "Inf"} {
		_, err = ParseOptionalFloat("minPrice", bad)
		assert.Error(t, err, bad)
	}
}
