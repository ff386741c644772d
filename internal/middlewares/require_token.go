package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingAuthzHeader     = errors.New("missing authorization header")
	ErrInvalidAuthzHeader     = errors.New("invalid authorization header")
	ErrUnsupportedAuthzScheme = errors.New("unsupported authorization scheme")
	ErrMissingAuthzToken      = errors.New("missing authorization token")
	ErrInvalidToken           = errors.New("invalid api token")
)

// RequireToken rejects requests whose bearer token matches none of the
// configured digests. With no digests configured every request passes.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		digests := appCtx.Config.Server.APITokens
		if len(digests) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		token, err := ExtractBearerToken(r)
		if err == nil {
			err = VerifyToken(token, digests)
		}
		if err != nil {
			appCtx.Logger.Debug("rejected api request", "path", r.URL.Path, "error", err)
			appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthzHeader
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found {
		return "", ErrInvalidAuthzHeader
	}

	if !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAuthzScheme, scheme)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingAuthzToken
	}

	return token, nil
}

// VerifyToken compares token against every digest, including after a match.
func VerifyToken(token string, digests []string) error {
	matched := false
	for _, digest := range digests {
		if bcrypt.CompareHashAndPassword([]byte(digest), []byte(token)) == nil {
			matched = true
		}
	}
	if !matched {
		return ErrInvalidToken
	}
	return nil
}

// HashToken returns the digest to place in server.api_tokens for token.
func HashToken(token string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(digest), nil
}
