package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ShareTokenHeader carries the token issued when a protected share is unlocked.
	ShareTokenHeader = "X-Share-Token"

	shareTokenKey = "share_token"
)

// ShareToken returns a middleware that picks up a share access token from
// X-Share-Token or an "Authorization: Bearer" header. The share service
// checks the token against the share being opened.
func ShareToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(ShareTokenHeader))
		if token == "" {
			if auth := c.GetHeader("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
				token = strings.TrimSpace(auth[7:])
			}
		}
		if token != "" {
			c.Set(shareTokenKey, token)
		}
		c.Next()
	}
}

// GetShareToken returns the token found by ShareToken, or "".
func GetShareToken(c *gin.Context) string {
	return c.GetString(shareTokenKey)
}
