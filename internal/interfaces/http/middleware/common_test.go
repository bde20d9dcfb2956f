package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/houses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"houses": []string{"PH-001"}})
	})
	return router
}

func allowDashboards() CORSConfig {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://ops.prodstock.io", "https://dashboard.prodstock.io"}
	return cfg
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins, "no origin is allowed until configured")
	assert.Contains(t, cfg.AllowHeaders, "X-Request-ID")
	assert.Contains(t, cfg.ExposeHeaders, "X-RateLimit-Remaining")
	assert.True(t, cfg.AllowCredentials)
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		router := corsRouter(allowDashboards())

		req := httptest.NewRequest(http.MethodGet, "/houses", nil)
		req.Header.Set("Origin", "https://dashboard.prodstock.io")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://dashboard.prodstock.io", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers but the request runs", func(t *testing.T) {
		router := corsRouter(allowDashboards())

		req := httptest.NewRequest(http.MethodGet, "/houses", nil)
		req.Header.Set("Origin", "https://kitchen-portal.example.net")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty allow list never writes CORS headers", func(t *testing.T) {
		router := corsRouter(DefaultCORSConfig())

		req := httptest.NewRequest(http.MethodGet, "/houses", nil)
		req.Header.Set("Origin", "https://ops.prodstock.io")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}
		router := corsRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/houses", nil)
		req.Header.Set("Origin", "https://whatever.example.net")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"),
			"credentials must not combine with a wildcard origin")
	})

	t.Run("preflight from an allowed origin answers 204 with headers", func(t *testing.T) {
		router := corsRouter(allowDashboards())

		req := httptest.NewRequest(http.MethodOptions, "/houses", nil)
		req.Header.Set("Origin", "https://ops.prodstock.io")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://ops.prodstock.io", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from a disallowed origin still answers 204, bare", func(t *testing.T) {
		router := corsRouter(allowDashboards())

		req := httptest.NewRequest(http.MethodOptions, "/houses", nil)
		req.Header.Set("Origin", "https://evil.example.net")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/stock", func(c *gin.Context) {
			// handlers read the ID back off the request header
			c.String(http.StatusOK, c.GetHeader("X-Request-ID"))
		})
		return router
	}

	t.Run("keeps the caller's request ID", func(t *testing.T) {
		router := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/stock", nil)
		req.Header.Set("X-Request-ID", "integration-suite-7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "integration-suite-7", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "integration-suite-7", w.Body.String())
	})

	t.Run("generates a uuid when the caller sends none", func(t *testing.T) {
		router := newRouter()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stock", nil))

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "generated IDs are uuids")
	})

	t.Run("propagates the generated ID onto the request header", func(t *testing.T) {
		router := newRouter()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stock", nil))

		require.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
	})

	t.Run("each request gets its own ID", func(t *testing.T) {
		router := newRouter()

		first := httptest.NewRecorder()
		second := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/stock", nil))
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/stock", nil))

		assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
	})
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(mw gin.HandlerFunc) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(mw)
		router.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
		return w
	}

	t.Run("default headers", func(t *testing.T) {
		w := serve(Secure())

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
		assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS is opt-in")
	})

	t.Run("HSTS when enabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSPreload = true
		w := serve(SecureWithConfig(cfg))

		hsts := w.Header().Get("Strict-Transport-Security")
		assert.Contains(t, hsts, "max-age=31536000")
		assert.Contains(t, hsts, "includeSubDomains")
		assert.Contains(t, hsts, "preload")
	})

	t.Run("CSP can be turned off", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.CSPEnabled = false
		w := serve(SecureWithConfig(cfg))

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})
}
