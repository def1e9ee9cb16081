package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/t", nil)
	c.Set("request_id", "req-123")
	return c, w
}

func TestSuccessWritesEnvelope(t *testing.T) {
	c, w := testCtx()

	resp := Success(c, http.StatusCreated, map[string]string{"id": "1"}, "created", nil)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-123", body["request_id"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, true, body["success"])
}

func TestErrorBuildsWithoutWriting(t *testing.T) {
	c, w := testCtx()

	resp := Error[any](c, http.StatusForbidden, "denied", map[string]string{"required": "book:edit"})
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Empty(t, w.Body.Bytes())
}

func TestFailWritesImmediately(t *testing.T) {
	c, w := testCtx()

	Fail(c, http.StatusNotFound, "not found", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}
