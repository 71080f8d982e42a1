package middleware

import (
	"net/http"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/response"
)

// RequireRole checks that the authenticated user holds one of the allowed
// roles. The role is read from context, set by AuthMiddleware from the JWT
// claims.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireProvider is a convenience middleware for provider-only endpoints
func RequireProvider(next http.Handler) http.Handler {
	return RequireRole(entity.RoleProvider)(next)
}

// RequireAdminOrProvider is a convenience middleware for calendar-management endpoints
func RequireAdminOrProvider(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleProvider)(next)
}
