package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the unified response shape: a timestamp on every reply,
// data on success, message on error.
type Envelope struct {
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// Respond sends the envelope with the given status code.
func Respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, Envelope{
		Timestamp: nowMillis(),
		Data:      data,
		Message:   message,
	})
}

// Success sends a 200 OK response carrying data.
func Success(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, data, "")
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, statusCode int, message string) {
	Respond(c, statusCode, nil, message)
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 Internal Server Error.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
