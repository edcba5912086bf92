package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/goil-app/notification-read-service/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testConfig()))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Not Authorized", body["message"])
}

func TestAuthMiddleware_MissingBusinessID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	r := gin.New()
	r.Use(Auth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, 500, w.Code)
}

func TestAuthMiddleware_Valid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"userId":     "u1",
		"businessId": "b1",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	r := gin.New()
	r.Use(Auth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
}

func TestAuthMiddleware_Expired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"userId":     "u1",
		"businessId": "b1",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	})

	r := gin.New()
	r.Use(Auth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Token expired", body["message"])
}
