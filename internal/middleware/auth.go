package middleware

import (
	"strings"

	"quiz_backend/internal/config"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	return tokenString
}

// AuthMiddleware rejects requests without a valid JWT.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		cfg := c.MustGet("config").(*config.Config)
		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware resolves a JWT when one is present but lets anonymous
// requests through; a bad token is simply ignored.
func TryAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" {
			cfg := c.MustGet("config").(*config.Config)
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}
