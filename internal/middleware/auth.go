package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medical_chat/internal/config"
	"medical_chat/pkg/jwt"
	"medical_chat/pkg/logger"
)

type AuthMiddleware struct {
	jwtCfg config.JWTConfig
	log    logger.Logger
}

func NewAuthMiddleware(jwtCfg config.JWTConfig, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtCfg: jwtCfg,
		log:    log,
	}
}

// RequireAuth проверяет bearer-токен и кладет идентичность в контекст запроса.
// Токены выпускает внешний сервис учетных записей с тем же секретом.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(parts[1], m.jwtCfg.AccessSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
