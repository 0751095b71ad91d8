// Package domain defines modification DTOs and ports
package domain

import "slidesift/internal/core/mutate"

// ModifyRequest carries the caller's knobs for one modification pass.
// Zero-valued style fields are left untouched in the deck
type ModifyRequest struct {
	ReplaceAIContent bool
	FontName         string  `validate:"max=100"`
	TextColor        string  `validate:"omitempty,hexrgb"`
	Threshold        float64 `validate:"gte=0,lte=1"`
}

// ModifiedDeck is the outcome: the rewritten bytes plus the mutation
// report so callers can see what landed and what was skipped
type ModifiedDeck struct {
	Name   string
	Data   []byte
	Report mutate.Report
}
