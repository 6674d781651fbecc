package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/ugym-konect/api/internal/config"
)

// newOfflineServer wires the server against a MongoDB address nobody listens on.
// mongo.Connect does not dial, so only handlers that touch the database fail.
func newOfflineServer(t *testing.T, origins []string) *Server {
	t.Helper()
	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	cfg := config.Config{
		Addr:              ":0",
		MongoDatabase:     "ugym-test",
		ListingCollection: "listings",
		CartCollection:    "carts",
		InquiryCollection: "inquiries",
		Timeout:           200 * time.Millisecond,
		ServerLog:         log.New(io.Discard, "", 0),
		JWTConfigs:        []config.JWTConfig{{Issuer: "test", Secret: []byte("secret")}},
		PlatformFeeRate:   0.30,
		AllowedOrigins:    origins,
	}
	return New(cfg, client)
}

func TestServerRoutes(t *testing.T) {
	srv := newOfflineServer(t, []string{"https://ugym.example"})
	handler := srv.routes()

	t.Run("taxonomy needs no backing store", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/taxonomy", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cart requires a bearer token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin requires a bearer token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/listings", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health reports degraded without mongo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"status": "degraded"}, body, "driver errors stay in the log")
	})

	t.Run("unknown sort is rejected before the store is queried", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gyms?sort=bogus", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name        string
		origins     []string
		origin      string
		method      string
		wantStatus  int
		wantAllowed string
	}{
		{"allowed origin", []string{"https://ugym.example"}, "https://ugym.example", http.MethodGet, http.StatusOK, "https://ugym.example"},
		{"foreign origin", []string{"https://ugym.example"}, "https://evil.example", http.MethodGet, http.StatusOK, ""},
		{"wildcard", []string{"*"}, "https://any.example", http.MethodGet, http.StatusOK, "https://any.example"},
		{"preflight", []string{"*"}, "https://any.example", http.MethodOptions, http.StatusNoContent, "https://any.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/gyms", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			withCORS(tt.origins)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
