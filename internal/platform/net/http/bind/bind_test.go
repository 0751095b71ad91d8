package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "slidesift/internal/platform/errors"
)

type detectPayload struct {
	Text      string  `json:"text" validate:"required,min=10"`
	Model     string  `json:"model,omitempty" validate:"omitempty,printascii"`
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type stylePayload struct {
	FontName  string `json:"font_name,omitempty"`
	TextColor string `json:"text_color,omitempty" validate:"omitempty,hexrgb"`
}

func TestParseJSONHappyPath(t *testing.T) {
	r := httptest.NewRequest("POST", "/detection/text",
		strings.NewReader(`{"text":"long enough for the validator","threshold":0.7}`))

	got, err := ParseJSON[detectPayload](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Threshold != 0.7 {
		t.Fatalf("threshold = %v, want 0.7", got.Threshold)
	}
}

func TestParseJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		code perr.ErrorCode
	}{
		{"empty body", ``, perr.ErrorCodeJSON},
		{"invalid json", `{"text":`, perr.ErrorCodeJSON},
		{"unknown field", `{"text":"0123456789","bogus":1}`, perr.ErrorCodeJSON},
		{"trailing data", `{"text":"0123456789"}{}`, perr.ErrorCodeJSON},
		{"too short", `{"text":"short"}`, perr.ErrorCodeValidation},
		{"threshold out of range", `{"text":"0123456789","threshold":1.5}`, perr.ErrorCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/detection/text", strings.NewReader(tt.body))
			_, err := ParseJSON[detectPayload](r)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, tt.code) {
				t.Fatalf("code = %v, want %v (err: %v)", perr.CodeOf(err), tt.code, err)
			}
		})
	}
}

func TestHexRGBTag(t *testing.T) {
	tests := []struct {
		color string
		ok    bool
	}{
		{"", true},
		{"#336699", true},
		{"336699", true},
		{"#FFF", false},
		{"#GGGGGG", false},
	}
	for _, tt := range tests {
		err := Struct(stylePayload{TextColor: tt.color})
		if tt.ok && err != nil {
			t.Fatalf("color %q should validate: %v", tt.color, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("color %q should be rejected", tt.color)
		}
	}
}
