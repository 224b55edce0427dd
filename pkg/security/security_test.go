package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(origins, methods, headers []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins, methods, headers))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", origin)
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflightDefaults(t *testing.T) {
	r := corsRouter([]string{"http://localhost:3000"}, nil, nil)

	w := preflight(r, "http://localhost:3000")
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, defaultAllowedMethods, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, defaultAllowedHeaders, w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflightConfiguredMethodsAndHeaders(t *testing.T) {
	r := corsRouter(
		[]string{"http://app.local"},
		[]string{"GET", "POST"},
		[]string{"Content-Type", "Authorization"},
	)

	w := preflight(r, "http://app.local")
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSUnknownOriginNotAllowed(t *testing.T) {
	r := corsRouter([]string{"http://app.local"}, nil, nil)

	w := preflight(r, "http://evil.local")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
