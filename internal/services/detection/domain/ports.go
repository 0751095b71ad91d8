package domain

import (
	"context"

	"slidesift/internal/core/detect"
)

// ServicePort defines the detection service contract. Other modules
// consume it through the module registry
type ServicePort interface {
	DetectText(ctx context.Context, text string) (detect.Result, error)
	DetectDeck(ctx context.Context, filename string, raw []byte) (DeckReport, error)
}
