package address

import (
	apphttp "intake_backend/internal/http"
)

// Module wires the address HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(svc *Service) *Module {
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string {
	return "address"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/address")
	if ctx.RateLimiter != nil {
		group.Use(ctx.RateLimiter.RateLimit())
	}
	group.GET("/validate", m.handler.Validate)
	group.GET("/lookup", m.handler.Lookup)
}

var _ apphttp.Module = (*Module)(nil)
