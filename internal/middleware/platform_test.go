package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPlatform_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Platform())
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 403, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Platform not Authorized", body["message"])
}

func TestPlatform_WrongValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Platform())
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("x-client-platform", "web")
	r.ServeHTTP(w, req)

	require.Equal(t, 403, w.Code)
}

func TestPlatform_CaseInsensitive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Platform())
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("x-client-platform", "Mobile-Platform")
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
}
