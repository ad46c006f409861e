package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/common"
)

// AdminAuth admits requests carrying "Authorization: Bearer <token>".
// An empty configured token rejects everything.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.Error(common.Errf(http.StatusUnauthorized, "unauthorized"))
			c.Abort()
			return
		}

		c.Next()
	}
}
