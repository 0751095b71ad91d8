package modkit

import (
	"slidesift/internal/core/detect"
	"slidesift/internal/core/plan"
	"slidesift/internal/platform/config"
	"slidesift/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// Classifier is the process-wide cached model handle, shared read-only
	Classifier detect.Classifier
	// Generator produces substitute text for planned replacements
	Generator plan.Generator
}
