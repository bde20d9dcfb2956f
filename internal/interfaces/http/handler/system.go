package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "prodstock"
	serviceVersion = "1.0.0"
)

// SystemHandler serves the service identity and liveness endpoints.
type SystemHandler struct {
	BaseHandler
	started time.Time
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{started: time.Now()}
}

// SystemInfoResponse describes the running service.
type SystemInfoResponse struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// GetSystemInfo reports the service name, version and uptime.
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:          serviceName,
		Version:       serviceVersion,
		GoVersion:     runtime.Version(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// Ping answers liveness checks without touching the database.
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
