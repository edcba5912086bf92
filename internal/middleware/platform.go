// ================== internal/middleware/platform.go ==================
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goil-app/notification-read-service/internal/pkg/response"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

const clientPlatformHeader = "x-client-platform"

// Platform rejects any request whose x-client-platform header isn't
// "mobile-platform". This service is mobile-only.
func Platform() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := strings.TrimSpace(c.GetHeader(clientPlatformHeader))
		if !strings.EqualFold(v, "mobile-platform") {
			guard := pkgerrors.NewGuard(pkgerrors.KindPlatform, http.StatusForbidden, "Platform not Authorized")
			response.Error(c, guard.Status, guard.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}
