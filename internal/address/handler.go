package address

import (
	"intake_backend/platform/apperr"
	"intake_backend/platform/httpkit"
	"intake_backend/platform/sanitize"

	"github.com/gin-gonic/gin"
)

// Handler exposes the address endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Validate handles GET /api/v1/address/validate?address=...
// The response is always 200; validity is reported in the body.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	_ = c.ShouldBindQuery(&req)

	raw := req.Address
	if raw == "" {
		raw = req.Query
	}

	httpkit.OK(c, h.svc.Validate(c.Request.Context(), sanitize.Text(raw)))
}

// Lookup handles GET /api/v1/address/lookup?q=...
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("query 'q' is required (min 3 chars)").
			WithOp("address.lookup").
			WithDetails(gin.H{"field": "q", "min": lookupMinLength}))
		return
	}

	httpkit.OK(c, LookupResponse{
		Suggestions: h.svc.Suggest(c.Request.Context(), sanitize.Text(req.Query)),
	})
}
