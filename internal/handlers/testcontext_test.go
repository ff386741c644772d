package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"scm-gateway/internal/config"
	"scm-gateway/internal/middlewares"
	"scm-gateway/internal/mocks"
	"scm-gateway/internal/testutil"
)

// testContext holds a request, its recorder and the mocked services behind an AppContext.
type testContext struct {
	AppContext  *middlewares.AppContext
	Request     *http.Request
	Response    *httptest.ResponseRecorder
	MockCA      *mocks.MockCertificateAuthority
	MockStorage *mocks.MockStorageProvider
	MockSync    *mocks.MockSyncTrigger
	MockCache   *mocks.MockCacheInvalidator
	LogHandler  *testutil.TestLogHandler
}

func newTestContext(t *testing.T, method, url string, body string) *testContext {
	t.Helper()

	ctrl := gomock.NewController(t)
	logHandler := testutil.NewTestLogHandler()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	rr := httptest.NewRecorder()

	tc := &testContext{
		Request:     req,
		Response:    rr,
		MockCA:      mocks.NewMockCertificateAuthority(ctrl),
		MockStorage: mocks.NewMockStorageProvider(ctrl),
		MockSync:    mocks.NewMockSyncTrigger(ctrl),
		MockCache:   mocks.NewMockCacheInvalidator(ctrl),
		LogHandler:  logHandler,
	}

	tc.AppContext = &middlewares.AppContext{
		Context:  req.Context(),
		Config:   &config.Config{},
		Logger:   slog.New(logHandler),
		CA:       tc.MockCA,
		Storage:  tc.MockStorage,
		Sync:     tc.MockSync,
		Cache:    tc.MockCache,
		Request:  req,
		Response: rr,
	}
	return tc
}

// withURLParam sets a chi route parameter on the request.
func (tc *testContext) withURLParam(key, value string) *testContext {
	rctx := chi.RouteContext(tc.Request.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)

	req := tc.Request.WithContext(context.WithValue(tc.Request.Context(), chi.RouteCtxKey, rctx))
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}

func (tc *testContext) callHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

func (tc *testContext) assertStatus(t *testing.T, expected int) {
	t.Helper()
	if tc.Response.Code != expected {
		t.Errorf("Expected status %d, got %d (body %s)", expected, tc.Response.Code, tc.Response.Body.String())
	}
}

func (tc *testContext) jsonResponse(t *testing.T) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

func (tc *testContext) assertJSONField(t *testing.T, field string, expected any) {
	t.Helper()
	response := tc.jsonResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}
