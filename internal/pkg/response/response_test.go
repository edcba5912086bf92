package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "timestamp")
	require.NotContains(t, body, "message")
	data := body["data"].(map[string]any)
	require.Equal(t, "bar", data["foo"])
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, 400, "bad request")
	require.Equal(t, 400, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "bad request", body["message"])
	require.NotContains(t, body, "data")
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(*gin.Context, string)
		want int
	}{
		{"bad request", BadRequest, 400},
		{"unauthorized", Unauthorized, 401},
		{"forbidden", Forbidden, 403},
		{"not found", NotFound, 404},
		{"internal", InternalServerError, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tc.fn(c, "msg")
			require.Equal(t, tc.want, w.Code)
		})
	}
}
