package httpkit

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	perr "slidesift/internal/platform/errors"
	"slidesift/internal/platform/net/http/bind"
)

// Validate runs struct validation on a non-JSON input, e.g. one built
// from multipart form fields
func Validate(v any) error { return bind.Struct(v) }

// ReadUpload pulls one multipart file out of the request, enforcing the
// byte ceiling and an extension allowlist. Size and extension checks
// live here at the transport boundary, not in the core
func ReadUpload(r *http.Request, field string, maxBytes int64, exts ...string) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", nil, perr.Validationf("multipart form: %v", err)
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return "", nil, perr.Validationf("missing %q upload", field)
	}
	defer f.Close()

	if len(exts) > 0 {
		got := strings.ToLower(filepath.Ext(hdr.Filename))
		ok := false
		for _, e := range exts {
			if got == strings.ToLower(e) {
				ok = true
				break
			}
		}
		if !ok {
			return "", nil, perr.UnsupportedContainerf("unsupported file type %q, want %s", got, strings.Join(exts, ", "))
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", nil, perr.Validationf("read upload: %v", err)
	}
	if int64(len(data)) > maxBytes {
		return "", nil, perr.TooLargef("upload exceeds %d bytes", maxBytes)
	}
	if len(data) == 0 {
		return "", nil, perr.Validationf("empty upload")
	}
	return hdr.Filename, data, nil
}
