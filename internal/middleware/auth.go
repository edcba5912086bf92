// ================== internal/middleware/auth.go ==================
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goil-app/notification-read-service/internal/config"
	"github.com/goil-app/notification-read-service/internal/pkg/jwtutil"
	"github.com/goil-app/notification-read-service/internal/pkg/response"
	"github.com/goil-app/notification-read-service/internal/pkg/security"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

// Auth decodes the HS256 bearer token and attaches a security.Context
// to the request. businessId is mandatory on the claims; typeId and
// sessionId are optional here (the session guard later rejects a
// missing sessionId and fills in the language).
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtutil.Decode(tokenString, cfg.JWTSecret)
		if err != nil {
			var guard *pkgerrors.Guard
			switch {
			case errors.Is(err, jwtutil.ErrExpired):
				guard = pkgerrors.NewGuard(pkgerrors.KindAuth, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, jwtutil.ErrInvalidSignature):
				guard = pkgerrors.NewGuard(pkgerrors.KindAuth, http.StatusUnauthorized, "Token has invalid signature")
			default:
				guard = pkgerrors.NewGuard(pkgerrors.KindAuth, http.StatusUnauthorized, "Not Authorized")
			}
			response.Error(c, guard.Status, guard.Message)
			c.Abort()
			return
		}

		if claims.BusinessID == "" {
			guard := pkgerrors.NewGuard(pkgerrors.KindAuth, http.StatusInternalServerError, "Business id is required")
			response.Error(c, guard.Status, guard.Message)
			c.Abort()
			return
		}

		sc := security.New(claims.UserID, claims.BusinessID, claims.SessionID, claims.TypeID)
		security.Attach(c, sc)
		c.Next()
	}
}
