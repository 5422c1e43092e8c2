package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go-auth-service/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string, now time.Time) (string, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate resolves the Authorization header into a request-scoped
// identity. It never rejects: a missing, malformed, mis-signed, or expired
// bearer token leaves the request anonymous and the access decision to
// whatever guard sits downstream.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := m.verifier.Verify(strings.TrimSpace(header[7:]), time.Now())
		if err != nil {
			slog.Debug("bearer token rejected", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		identity := &model.Identity{Username: subject, Authorities: []string{}}
		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth is the downstream authorization check: anonymous requests
// get a 401 here, not in Authenticate.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeUnauthorized(w, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*model.Identity)
	return identity, ok
}

// ContextWithIdentity exists for handler tests; production code only ever
// attaches identities through Authenticate.
func ContextWithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = jsonEncode(w, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}
