// Package detect aggregates a classifier's per-chunk output into one
// label and confidence per text unit
package detect

import (
	"context"

	"slidesift/internal/core/chunk"
	perr "slidesift/internal/platform/errors"
)

// Label is the unit-level decision
type Label string

const (
	// LabelAI marks text judged machine generated
	LabelAI Label = "AI"
	// LabelHuman marks text judged human written
	LabelHuman Label = "HUMAN"
)

// ErrClassificationUnavailable is returned when every chunk of a unit
// failed classification; no confidence is fabricated in that case
var ErrClassificationUnavailable = perr.New(perr.ErrorCodeClassifier, "classification unavailable")

// Classifier maps a token-bounded text to the probability mass of the
// AI class. Implementations are shared read-only across requests
type Classifier interface {
	Classify(ctx context.Context, text string) (float64, error)
	ModelName() string
}

// Result is the aggregated decision for one text unit. Confidence is
// always the AI-class mass, never renormalized after aggregation
type Result struct {
	Label        Label   `json:"label"`
	Confidence   float64 `json:"confidence"`
	Model        string  `json:"model"`
	Chunks       int     `json:"chunks"`
	FailedChunks int     `json:"failed_chunks,omitempty"`
	// Unreliable flags results for inputs below the minimum token
	// floor; the confidence is reported as-is but is not high-certainty
	Unreliable bool `json:"unreliable,omitempty"`
}

// Options tunes aggregation bounds
type Options struct {
	// MaxChunkTokens caps chunk length in word tokens (default 512)
	MaxChunkTokens int
	// MinTokens is the floor below which results are flagged
	// unreliable rather than rejected (default 50)
	MinTokens int
}

// Aggregator runs chunked classification over text units
type Aggregator struct {
	cls  Classifier
	opts Options
}

// New returns an Aggregator over the given classifier, filling
// zero-valued options with defaults
func New(cls Classifier, opts Options) *Aggregator {
	if opts.MaxChunkTokens < 1 {
		opts.MaxChunkTokens = chunk.DefaultMaxTokens
	}
	if opts.MinTokens < 1 {
		opts.MinTokens = 50
	}
	return &Aggregator{cls: cls, opts: opts}
}

// Detect classifies text chunk by chunk in order and returns the mean
// AI probability across the chunks that succeeded. Empty text is HUMAN
// with confidence 0 and never reaches the classifier; a unit whose
// every chunk fails surfaces ErrClassificationUnavailable
func (a *Aggregator) Detect(ctx context.Context, text string) (Result, error) {
	res := Result{Label: LabelHuman, Model: a.cls.ModelName()}

	tokens := chunk.Count(text)
	if tokens == 0 {
		return res, nil
	}
	res.Unreliable = tokens < a.opts.MinTokens

	chunks := chunk.Split(text, a.opts.MaxChunkTokens)
	res.Chunks = len(chunks)

	var sum float64
	ok := 0
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		p, err := a.cls.Classify(ctx, c)
		if err != nil {
			res.FailedChunks++
			continue
		}
		sum += clamp01(p)
		ok++
	}
	if ok == 0 {
		return Result{}, perr.Wrapf(
			ErrClassificationUnavailable,
			perr.ErrorCodeClassifier,
			"all %d chunks failed", len(chunks),
		)
	}

	res.Confidence = sum / float64(ok)
	if res.Confidence > 0.5 {
		res.Label = LabelAI
	}
	return res, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
