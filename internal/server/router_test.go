package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"scm-gateway/internal/config"
	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/mocks"
	"scm-gateway/internal/models"
	"scm-gateway/internal/testutil"
)

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *mocks.MockCertificateAuthority) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ca := mocks.NewMockCertificateAuthority(ctrl)
	appCtx := middlewares.NewAppContext(context.Background(), cfg, slog.New(testutil.NewTestLogHandler()), ca, nil, nil, nil)
	return setupRouter(appCtx), ca
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, &config.Config{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rr.Body.String())
}

func TestRouter_RequiresToken(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("gateway-token"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{Server: config.ServerConfig{APITokens: []string{string(digest)}}}
	router, ca := newTestRouter(t, cfg)
	ca.EXPECT().ProductIDs(gomock.Any()).Return([]string{"77"}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer gateway-token")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"product_ids":["77"]}`, rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_CertificateRoutes(t *testing.T) {
	router, ca := newTestRouter(t, &config.Config{})
	ca.EXPECT().GetSingleRecord(gomock.Any(), "42-1").Return(&models.CanonicalCertificate{RequestID: "42-1", Status: models.StatusIssued}, nil)
	ca.EXPECT().Revoke(gomock.Any(), "42-1", 4).Return(models.StatusRevoked, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/certificates/42-1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/certificates/42-1/revoke", strings.NewReader(`{"reason_code":4}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"Revoked"`)
}

func TestRouter_SyncDisabled(t *testing.T) {
	router, _ := newTestRouter(t, &config.Config{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil))
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestRouter_CORS(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{CORS: &config.CORSConfig{
		AllowedOrigins: []string{"https://ops.example.com"},
		AllowedMethods: []string{http.MethodGet},
	}}}
	router, _ := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://ops.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
