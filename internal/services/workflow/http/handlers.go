// Package http wires workflow endpoints
package http

import (
	"net/http"
	"strconv"

	"slidesift/internal/core/plan"
	"slidesift/internal/modkit/httpkit"
	perr "slidesift/internal/platform/errors"
	"slidesift/internal/services/workflow/service"
)

// Register mounts the workflow routes on r
func Register(r httpkit.Router, svc service.Service) {
	// GET /workflow/n8n
	// @Summary      Generate n8n pipeline workflow
	// @Description  Returns an importable n8n workflow that detects and rewrites AI content through this API
	// @Tags         workflow
	// @Produce      json
	// @Param        threshold  query  number  false  "Confidence threshold for replacement (0..1, default 0.7)"
	// @Param        api_base   query  string  false  "Base URL the workflow nodes should call"
	// @Success      200  {object}  map[string]any
	// @Failure      400  {object}  httpkit.ErrorResponse
	// @Router       /workflow/n8n [get]
	httpkit.Get(r, "/n8n", func(req *http.Request) (any, error) {
		threshold := plan.DefaultThreshold
		if raw := req.URL.Query().Get("threshold"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 || v > 1 {
				return nil, perr.Validationf("threshold must be a number in [0,1]")
			}
			threshold = v
		}
		return svc.Pipeline(req.URL.Query().Get("api_base"), threshold), nil
	})

	// GET /workflow/n8n/detect
	// @Summary      Generate n8n detection workflow
	// @Description  Returns an importable n8n workflow for text detection only
	// @Tags         workflow
	// @Produce      json
	// @Param        api_base  query  string  false  "Base URL the workflow nodes should call"
	// @Success      200  {object}  map[string]any
	// @Router       /workflow/n8n/detect [get]
	httpkit.Get(r, "/n8n/detect", func(req *http.Request) (any, error) {
		return svc.Detection(req.URL.Query().Get("api_base")), nil
	})
}
