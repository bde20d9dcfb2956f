package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSConfig holds the cross-origin policy for the API.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows no origins. Deployments list the dashboard and
// ops origins in config; an empty list rejects every cross-origin caller.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS applies the default cross-origin policy.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig handles preflight requests and stamps CORS headers on
// responses to allowed origins. Requests from origins outside the list pass
// through without CORS headers, which makes the browser reject them.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowed, ok := resolveOrigin(cfg.AllowOrigins, wildcard, origin)

		if c.Request.Method == http.MethodOptions {
			// Preflights always answer 204 so they never surface as 404;
			// headers only appear for allowed origins.
			if ok {
				writeCORSHeaders(c, cfg, allowed)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if ok {
			writeCORSHeaders(c, cfg, allowed)
		}
		c.Next()
	}
}

// resolveOrigin returns the Access-Control-Allow-Origin value for origin,
// or false when no CORS headers should be written.
func resolveOrigin(allowList []string, wildcard bool, origin string) (string, bool) {
	if len(allowList) == 0 {
		return "", false
	}
	if wildcard {
		return "*", true
	}
	for _, o := range allowList {
		if o == origin {
			return origin, origin != ""
		}
	}
	return "", false
}

func writeCORSHeaders(c *gin.Context, cfg CORSConfig, allowedOrigin string) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", allowedOrigin)
	h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))

	// Credentials with a wildcard origin is rejected by browsers, so the
	// header is only meaningful for a concrete origin.
	if cfg.AllowCredentials && allowedOrigin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if len(cfg.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID tags every request with an ID so a stock read can be traced
// through the gin log, the gorm adapter and the error envelope. A caller's
// own X-Request-ID is kept; otherwise one is generated. The ID is written
// back onto the request header so handlers can read generated IDs too.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Request.Header.Set("X-Request-ID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// SecurityConfig controls the optional security headers.
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	CSPEnabled   bool
	CSPDirective string

	PermissionsPolicyEnabled   bool
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns the headers for a JSON API: a restrictive
// CSP, browser features disabled, HSTS off until the deployment terminates
// TLS itself.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,

		CSPEnabled:   true,
		CSPDirective: "default-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",

		PermissionsPolicyEnabled:   true,
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure applies the default security headers.
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig stamps security headers on every response.
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	static := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	if cfg.CSPEnabled && cfg.CSPDirective != "" {
		static["Content-Security-Policy"] = cfg.CSPDirective
	}
	if cfg.PermissionsPolicyEnabled && cfg.PermissionsPolicyDirective != "" {
		static["Permissions-Policy"] = cfg.PermissionsPolicyDirective
	}
	if cfg.HSTSEnabled {
		hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		static["Strict-Transport-Security"] = hsts
	}

	return func(c *gin.Context) {
		for name, value := range static {
			c.Writer.Header().Set(name, value)
		}
		c.Next()
	}
}
