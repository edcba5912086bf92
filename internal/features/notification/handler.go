package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goil-app/notification-read-service/internal/pkg/response"
	"github.com/goil-app/notification-read-service/internal/pkg/security"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

// Handler wires the gin route for the single notification-read
// endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/v2/notification/:id/me.
func (h *Handler) Get(c *gin.Context) {
	sc, ok := security.FromGin(c)
	if !ok {
		guard := pkgerrors.NewGuard(pkgerrors.KindAuth, http.StatusForbidden, "Authentication required")
		response.Error(c, guard.Status, guard.Message)
		return
	}

	req := Request{
		ID:            c.Param("id"),
		UserID:        sc.UserID,
		BusinessID:    sc.BusinessID,
		SessionID:     sc.SessionID,
		AccountTypeID: sc.AccountTypeID,
		Language:      sc.Language,
		BusinessIDs:   c.QueryArray("businessIds[]"),
		Headers: TrackingHeaders{
			Authorization:  c.GetHeader("Authorization"),
			ClientPlatform: c.GetHeader("x-client-platform"),
			ClientOS:       c.GetHeader("x-client-os"),
			ClientDevice:   c.GetHeader("x-client-device"),
			ClientID:       c.GetHeader("x-client-id"),
		},
	}

	result, guard := h.service.Get(c.Request.Context(), req)
	if guard != nil {
		response.Error(c, guard.Status, guard.Message)
		return
	}

	response.Success(c, result)
}
