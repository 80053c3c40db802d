// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/raj-p26/inklink-backend/internal/core"
)

const DefaultTokenCookie = "token"

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID            string
	Email         string
	Username      string
	FirstName     string
	LastName      string
	Role          string
	AccountStatus string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}

func (i *Identity) IsActive() bool {
	return i != nil && i.AccountStatus == "active"
}

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityResolver loads the identity behind a verified token subject.
// A missing identity must be reported as core.ErrNotFound.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id string) (*Identity, error)
}

// Authenticator requires a valid token on every request it wraps. It is
// applied per route group; routes outside the group never see it.
//
// Failures short-circuit in order: no token (401), bad token (401), token
// subject with no backing identity (500). On success the identity is
// attached to the request context exactly once.
func Authenticator(
	verifier TokenVerifier,
	resolver IdentityResolver,
	cookieName string,
) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultTokenCookie
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if IsAuthenticated(ctx) {
				next.ServeHTTP(w, r)
				return
			}

			token := ExtractToken(r, cookieName)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("token not found"))
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				core.SetSpanError(ctx, err)
				core.JSONError(w, core.NewAppError(
					core.ErrTokenInvalid,
					"invalid token",
					http.StatusUnauthorized,
					"UNAUTHORIZED",
				))
				return
			}

			identity, err := resolver.ResolveIdentity(ctx, subject)
			if err != nil {
				core.SetSpanError(ctx, err)
				if errors.Is(err, core.ErrNotFound) {
					core.JSONError(w, core.InternalError("user not found", err))
					return
				}
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("admin")(next)
}

// ExtractToken returns the bearer token from the Authorization header or,
// failing that, from the named cookie. The header wins when both exist.
func ExtractToken(r *http.Request, cookieName string) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}

	return ""
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
