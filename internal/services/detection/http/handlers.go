// Package http provides http transport for detection
package http

import (
	stdhttp "net/http"

	"slidesift/internal/modkit/httpkit"
	"slidesift/internal/services/detection/domain"
	svc "slidesift/internal/services/detection/service"
)

// Deps are the handler dependencies
type Deps struct {
	MaxUploadBytes int64
}

// Register mounts detection endpoints on the given router
func Register(r httpkit.Router, s svc.Service, d Deps) {
	h := &handlers{svc: s, deps: d}
	httpkit.PostJSON[domain.TextInput](r, "/text", h.text)
	httpkit.Post(r, "/deck", h.deck)
}

type handlers struct {
	svc  svc.Service
	deps Deps
}

// @Summary Classify a text as AI or human written
// @Tags Detection
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "Text to classify"
// @Success 200 {object} detect.Result "ok"
// @Router /detection/text [post]
func (h *handlers) text(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.DetectText(r.Context(), in.Text)
}

// @Summary Classify every slide of an uploaded .pptx
// @Tags Detection
// @Accept mpfd
// @Produce json
// @Param file formData file true "Presentation to analyze"
// @Success 200 {object} domain.DeckReport "ok"
// @Router /detection/deck [post]
func (h *handlers) deck(r *stdhttp.Request) (any, error) {
	name, raw, err := httpkit.ReadUpload(r, "file", h.deps.MaxUploadBytes, ".pptx")
	if err != nil {
		return nil, err
	}
	return h.svc.DetectDeck(r.Context(), name, raw)
}
