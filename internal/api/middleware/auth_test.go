package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/auth"
	"github.com/hugh/orgroster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenVerifier checks tokens with a bare JWTService, without a database.
type tokenVerifier struct {
	*auth.JWTService
}

func (v tokenVerifier) VerifyCredential(token string) (*auth.Claims, error) {
	return v.ValidateToken(token)
}

func newJWT(expiry time.Duration) *auth.JWTService {
	return auth.NewJWTService("test-secret", expiry, "orgroster-test")
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth_ValidToken_AuthorizationHeader(t *testing.T) {
	jwtService := newJWT(24 * time.Hour)

	token, err := jwtService.GenerateToken(7, 3)
	require.NoError(t, err)

	handler := Auth(tokenVerifier{jwtService}, testutil.DiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, uint(7), GetUserID(r.Context()))
		assert.Equal(t, uint(3), GetOrganisationID(r.Context()))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	req := httptest.NewRequest("GET", "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	jwtService := newJWT(24 * time.Hour)
	token, err := jwtService.GenerateToken(1, 1)
	require.NoError(t, err)

	handler := Auth(tokenVerifier{jwtService}, testutil.DiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/teams", nil)
	req.Header.Set("Authorization", "bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_Rejected(t *testing.T) {
	jwtService := newJWT(24 * time.Hour)
	foreign, err := auth.NewJWTService("other-secret", time.Hour, "orgroster-test").GenerateToken(1, 1)
	require.NoError(t, err)
	expired, err := newJWT(-time.Hour).GenerateToken(1, 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"no_header", "", "Authentication required"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", "Authentication required"},
		{"empty_bearer", "Bearer ", "Authentication required"},
		{"garbage", "Bearer invalid-token", "Invalid token"},
		{"wrong_secret", "Bearer " + foreign, "Invalid token"},
		{"expired", "Bearer " + expired, "Token has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(tokenVerifier{jwtService}, testutil.DiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("Handler should not be called")
			}))

			req := httptest.NewRequest("GET", "/employees", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeError(t, rec)
			assert.Equal(t, "unauthorized", body.Code)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestAuth_WithIdentityService(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	authService := testutil.CreateTestAuthService(tc.DB, tc.JWTService, false)

	handler := Auth(authService, testutil.DiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, tc.User.ID, GetUserID(r.Context()))
		assert.Equal(t, tc.Org.ID, GetOrganisationID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tc.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	tampered := tc.Token[:len(tc.Token)-2] + "xx"
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Code)
}

func TestGetters_EmptyContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Zero(t, GetUserID(req.Context()))
	assert.Zero(t, GetOrganisationID(req.Context()))
}

func TestLogging_RecordsOrganisation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	jwtService := newJWT(time.Hour)
	token, err := jwtService.GenerateToken(2, 42)
	require.NoError(t, err)

	handler := Logging(logger)(Auth(tokenVerifier{jwtService}, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest("POST", "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "/teams", line["path"])
	assert.Equal(t, float64(http.StatusCreated), line["status"])
	assert.Equal(t, float64(42), line["organisation_id"])
}

func TestRecovery_ReturnsInternalEnvelope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/employees", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Code)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
}
