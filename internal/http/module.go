// Package http provides HTTP server infrastructure including the Module interface
// that domain modules implement for route registration.
package http

import (
	"intake_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// RateLimiter throttles public endpoints per client IP.
	RateLimiter *httpkit.IPRateLimiter
}
