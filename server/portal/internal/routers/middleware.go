package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasicAuthMiddleware provides Basic HTTP Authentication for accessing protected routes.
// TODO: Move these credentials to configuration or a more secure storage
func BasicAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, hasAuth := c.Request.BasicAuth()

		if hasAuth && user == BasicAuthUser && pass == BasicAuthPassword {
			c.Set(UsernameContextKey, user)
			c.Next()
		} else {
			c.Writer.Header().Set("WWW-Authenticate", BasicAuthRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		}
	}
}

// RequireAuthForWrites 对修改类请求强制 Basic 认证，读取类请求放行.
func RequireAuthForWrites() gin.HandlerFunc {
	auth := BasicAuthMiddleware()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			auth(c)
		}
	}
}

// OptionalAuthMiddleware 尝试解析凭据但不强制要求认证，
// 未认证的请求仍可访问立面图，只是设备信息会被脱敏.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, hasAuth := c.Request.BasicAuth()
		if hasAuth && user == BasicAuthUser && pass == BasicAuthPassword {
			c.Set(UsernameContextKey, user)
		}
		c.Next()
	}
}
