package domain

import (
	"context"

	"slidesift/internal/core/detect"
)

// ServicePort defines the modification service contract
type ServicePort interface {
	ModifyDeck(ctx context.Context, filename string, raw []byte, req ModifyRequest) (ModifiedDeck, error)
}

// DetectorPort is the slice of the detection module this module
// consumes; injected through the module registry
type DetectorPort interface {
	DetectText(ctx context.Context, text string) (detect.Result, error)
}
