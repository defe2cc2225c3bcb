package middleware

import (
	"net/http"
	"strings"

	"github.com/francescamaronna/appcolaboraciones/internal/auth"
	"github.com/francescamaronna/appcolaboraciones/internal/services"
	"github.com/francescamaronna/appcolaboraciones/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthenticatedUser struct {
	ID         uint   `json:"id"`
	AuthUserID string `json:"auth_user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// AuthMiddleware requires a valid token and resolves the auth identity to the
// application user, creating the row on first sight.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := resolveUser(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a token is present and lets
// anonymous visitors through. Used on public listings where membership state
// only enriches the response.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := resolveUser(ctx); ok {
			ctx.Set(types.ContextUserKey, user)
		}

		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	tokenString := extractToken(ctx)

	if tokenString == "" {
		return AuthenticatedUser{}, false
	}

	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		return AuthenticatedUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return AuthenticatedUser{}, false
	}

	authUserID, ok := claims["auth_user_id"].(string)

	if !ok || authUserID == "" {
		return AuthenticatedUser{}, false
	}

	email, _ := claims["email"].(string)

	user, err := services.EnsureUser(authUserID, email, "")

	if err != nil {
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:         user.ID,
		AuthUserID: user.AuthUserID,
		Name:       user.Name,
		Email:      user.Email,
	}, true
}

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
