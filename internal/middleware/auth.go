package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/quizmind/quizmind-api/internal/service"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

// Principal is the authenticated identity attached to the request context
// by RequireAuth.
type Principal struct {
	ID    uint
	Role  model.Role
	Email string
	Name  string
}

// RequireAuth verifies the bearer token, resolves the referenced user and
// attaches the Principal. It must run before any handler that calls
// GetPrincipal. Missing, malformed or expired tokens and tokens for
// deleted users all end the request with 401.
func RequireAuth(tokenSvc service.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
			return
		}

		claims, err := tokenSvc.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Token verification failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, token failed"})
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, user not found"})
			return
		}

		// The role comes from the user record, not the token, so role
		// changes take effect without waiting out token expiry.
		ctx.Set(principalKey, Principal{
			ID:    user.ID,
			Role:  user.Role,
			Email: user.Email,
			Name:  user.Name,
		})
		ctx.Next()
	}
}

// AuthorizeRoles rejects authenticated principals whose role is not in
// the allowed set. Must be registered after RequireAuth.
func AuthorizeRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := GetPrincipal(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
			return
		}
		if !principal.Role.In(allowed...) {
			log.Warn().Str("email", principal.Email).Str("role", string(principal.Role)).
				Str("path", ctx.FullPath()).Msg("Role not permitted for route")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Message: "Role " + string(principal.Role) + " is not authorized to access this route",
			})
			return
		}
		ctx.Next()
	}
}

// GetPrincipal returns the Principal attached by RequireAuth.
func GetPrincipal(ctx *gin.Context) (Principal, bool) {
	v, exists := ctx.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := v.(Principal)
	return principal, ok
}
