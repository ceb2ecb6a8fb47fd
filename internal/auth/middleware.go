package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/madhava-poojari/dashboard-web/internal/utils"
)

type ctxKey string

const (
	ctxClaimsKey ctxKey = "claims"
	ctxTokenKey  ctxKey = "token"
)

func GetClaimsFromCtx(ctx context.Context) *Claims {
	if c, ok := ctx.Value(ctxClaimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// GetTokenFromCtx returns the raw bearer token the request was authenticated with.
func GetTokenFromCtx(ctx context.Context) string {
	tok, _ := ctx.Value(ctxTokenKey).(string)
	return tok
}

// AuthMiddleware validates the bearer JWT and stores its claims in the context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "missing authorization", nil, nil)
				return
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid authorization header", nil, nil)
				return
			}
			claims, err := ParseAndValidateToken(secret, parts[1])
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid token", nil, nil)
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaimsKey, claims)
			ctx = context.WithValue(ctx, ctxTokenKey, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware allows multiple allowed roles; usage: RoleMiddleware("admin","coach")
func RoleMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	set := map[models.Role]struct{}{}
	for _, r := range allowedRoles {
		set[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := GetClaimsFromCtx(r.Context())
			if c == nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
				return
			}
			if _, ok := set[c.Role]; !ok {
				utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CanAccessStudent: students see only themselves; staff roles see everyone.
// Coach assignments live in the backend, which enforces them again.
func CanAccessStudent(c *Claims, studentID string) bool {
	if c == nil {
		return false
	}
	switch c.Role {
	case models.RoleAdmin, models.RoleCoach, models.RoleMentor:
		return true
	}
	return c.UserID == studentID
}
