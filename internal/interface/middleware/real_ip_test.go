package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func realIPFor(headers map[string]string) string {
	gin.SetMode(gin.TestMode)
	var got string
	r := gin.New()
	r.Use(RealIP())
	r.GET("/t", func(c *gin.Context) {
		got = c.GetString("real_ip")
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestRealIPPrefersCloudflare(t *testing.T) {
	ip := realIPFor(map[string]string{
		"CF-Connecting-IP": "203.0.113.7",
		"X-Forwarded-For":  "198.51.100.1, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.7", ip)
}

func TestRealIPUsesLeftmostForwardedFor(t *testing.T) {
	ip := realIPFor(map[string]string{
		"X-Forwarded-For": "198.51.100.1, 10.0.0.1",
	})
	assert.Equal(t, "198.51.100.1", ip)
}

func TestRealIPIgnoresGarbageHeaders(t *testing.T) {
	ip := realIPFor(map[string]string{
		"CF-Connecting-IP": "not-an-ip",
		"X-Forwarded-For":  "also-not-an-ip",
	})
	assert.NotEmpty(t, ip)
	assert.NotEqual(t, "not-an-ip", ip)
}

func TestRequestIDEchoedInHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
