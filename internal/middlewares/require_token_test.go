package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scm-gateway/internal/config"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid", header: "Bearer abc", wantToken: "abc"},
		{name: "case insensitive scheme", header: "bearer abc", wantToken: "abc"},
		{name: "missing", header: "", wantErr: ErrMissingAuthzHeader},
		{name: "no scheme", header: "abc", wantErr: ErrInvalidAuthzHeader},
		{name: "basic", header: "Basic abc", wantErr: ErrUnsupportedAuthzScheme},
		{name: "empty token", header: "Bearer  ", wantErr: ErrMissingAuthzToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := ExtractBearerToken(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestRequireToken(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("good-token"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name       string
		digests    []string
		header     string
		wantStatus int
	}{
		{name: "no tokens configured", wantStatus: http.StatusNoContent},
		{name: "matching token", digests: []string{"$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva", string(digest)}, header: "Bearer good-token", wantStatus: http.StatusNoContent},
		{name: "wrong token", digests: []string{string(digest)}, header: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
		{name: "missing header", digests: []string{string(digest)}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{APITokens: tt.digests}}
			base := NewAppContext(context.Background(), cfg, slog.New(slog.DiscardHandler), nil, nil, nil, nil)

			handler := AppContextMiddleware(base)(RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestHashToken(t *testing.T) {
	digest, err := HashToken("rotate-me")
	require.NoError(t, err)
	assert.NoError(t, VerifyToken("rotate-me", []string{digest}))
	assert.ErrorIs(t, VerifyToken("other", []string{digest}), ErrInvalidToken)
}
