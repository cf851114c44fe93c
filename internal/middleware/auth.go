package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/service"
)

// TokenCookie is the session cookie holding the signed JWT.
const TokenCookie = "avancement_token"

const (
	ctxUserID = "auth.user_id"
	ctxRole   = "auth.role"
)

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth authenticates via the session cookie, falling back to a
// Bearer header for non-browser clients.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(TokenCookie)
		if err != nil || token == "" {
			if h := ctx.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentification requise"})
			return
		}

		claims, err := m.authService.ParseToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Session invalide ou expirée"})
			return
		}

		ctx.Set(ctxUserID, claims.UserID)
		ctx.Set(ctxRole, claims.Role)
		ctx.Next()
	}
}

// RequireRole gates a route group to the given roles. It assumes
// RequireAuth already ran.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := CurrentRole(ctx)
		for _, r := range roles {
			if role == r {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Accès refusé pour ce rôle"})
	}
}

func CurrentUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentRole(ctx *gin.Context) string {
	if v, ok := ctx.Get(ctxRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
