// Package http provides http transport for modification
package http

import (
	stdhttp "net/http"
	"strconv"

	"slidesift/internal/core/plan"
	"slidesift/internal/modkit/httpkit"
	perr "slidesift/internal/platform/errors"
	"slidesift/internal/services/modification/domain"
	svc "slidesift/internal/services/modification/service"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Deps are the handler dependencies
type Deps struct {
	MaxUploadBytes int64
}

// Register mounts modification endpoints on the given router
func Register(r httpkit.Router, s svc.Service, d Deps) {
	h := &handlers{svc: s, deps: d}
	httpkit.PostRaw(r, "/deck", h.deck)
}

type handlers struct {
	svc  svc.Service
	deps Deps
}

// @Summary Rewrite AI-detected slides and apply style overrides
// @Tags Modification
// @Accept mpfd
// @Produce application/octet-stream
// @Param file formData file true "Presentation to modify"
// @Param replace_ai_content formData bool false "Replace AI-detected content (default true)"
// @Param font_name formData string false "Font to apply to every run"
// @Param text_color formData string false "Text color as RRGGBB"
// @Param confidence_threshold formData number false "Replacement threshold in [0,1] (default 0.7)"
// @Success 200 {file} binary "modified presentation"
// @Router /modification/deck [post]
func (h *handlers) deck(r *stdhttp.Request) httpkit.Response {
	name, raw, err := httpkit.ReadUpload(r, "file", h.deps.MaxUploadBytes, ".pptx")
	if err != nil {
		return httpkit.Error(err)
	}

	req, err := parseForm(r)
	if err != nil {
		return httpkit.Error(err)
	}

	out, err := h.svc.ModifyDeck(r.Context(), name, raw, req)
	if err != nil {
		return httpkit.Error(err)
	}

	resp := httpkit.Attachment(out.Name, pptxContentType, out.Data)
	resp.Header.Set("X-Replacements-Applied", strconv.Itoa(len(out.Report.Applied)))
	resp.Header.Set("X-Replacements-Skipped", strconv.Itoa(len(out.Report.Skipped)))
	return resp
}

// parseForm reads the modification knobs out of the multipart form,
// applying the defaults the API documents
func parseForm(r *stdhttp.Request) (domain.ModifyRequest, error) {
	req := domain.ModifyRequest{
		ReplaceAIContent: true,
		FontName:         r.FormValue("font_name"),
		TextColor:        r.FormValue("text_color"),
		Threshold:        plan.DefaultThreshold,
	}
	if v := r.FormValue("replace_ai_content"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return domain.ModifyRequest{}, perr.Validationf("replace_ai_content must be a boolean")
		}
		req.ReplaceAIContent = b
	}
	if v := r.FormValue("confidence_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.ModifyRequest{}, perr.Validationf("confidence_threshold must be a number")
		}
		req.Threshold = f
	}
	if err := httpkit.Validate(req); err != nil {
		return domain.ModifyRequest{}, err
	}
	return req, nil
}
