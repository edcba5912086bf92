// ================== internal/middleware/session.go ==================
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goil-app/notification-read-service/internal/features/session"
	"github.com/goil-app/notification-read-service/internal/pkg/response"
	"github.com/goil-app/notification-read-service/internal/pkg/security"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

// Session validates sessionId+businessId against AccountSessionInfo and
// folds the resolved language back into the security.Context. It must
// run after Auth.
func Session(repo *session.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := security.FromGin(c)
		if !ok {
			respondSessionGuard(c, "Authentication required")
			return
		}

		if sc.SessionID == "" {
			respondSessionGuard(c, "Session ID is required")
			return
		}
		if sc.BusinessID == "" {
			respondSessionGuard(c, "Business ID is required")
			return
		}

		sess, err := repo.FindByID(c.Request.Context(), sc.SessionID, sc.BusinessID)
		if err != nil {
			respondSessionGuard(c, "Invalid session")
			return
		}

		sc.Language = sess.Language
		security.Attach(c, sc)
		c.Next()
	}
}

func respondSessionGuard(c *gin.Context, message string) {
	guard := pkgerrors.NewGuard(pkgerrors.KindSession, http.StatusUnauthorized, message)
	response.Error(c, guard.Status, guard.Message)
	c.Abort()
}
