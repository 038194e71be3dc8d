package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is usable.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

var startTime = time.Now()

// RegisterHealth registers liveness and readiness endpoints.
// - GET /health -> always 200 while the process serves requests
// - GET /ready  -> 200 only when every check passes, 503 otherwise
func RegisterHealth(r gin.IRouter, checks ...Check) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for _, chk := range checks {
			ok := chk.Fn(ctx) == nil
			deps[chk.Name] = ok
			if !ok {
				ready = false
			}
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})
}
