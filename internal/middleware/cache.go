package middleware

import "github.com/gin-gonic/gin"

// NoStore disables caching for responses that must never be replayed from a
// cache, such as generated report downloads.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
