package inference

import (
	"context"
	"regexp"
	"strings"

	"slidesift/internal/core/chunk"
)

// markers are constructions that skew heavily toward machine-generated
// prose. The list is intentionally small; the heuristic exists so the
// pipeline runs without an inference server, not to rival a model
var markers = []string{
	"delve into",
	"furthermore",
	"moreover",
	"in conclusion",
	"it is important to note",
	"it is worth noting",
	"as an ai language model",
	"in today's fast-paced world",
	"seamlessly",
	"comprehensive overview",
	"leverage",
	"utilize",
	"in order to",
	"due to the fact that",
	"plays a crucial role",
	"a wide range of",
}

// Heuristic is an offline classifier scoring marker-phrase density.
// Deterministic and dependency free; useful for development and tests
type Heuristic struct {
	res []*regexp.Regexp
}

// NewHeuristic compiles the marker set
func NewHeuristic() *Heuristic {
	h := &Heuristic{}
	for _, m := range markers {
		h.res = append(h.res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(m)+`\b`))
	}
	return h
}

// ModelName implements detect.Classifier
func (h *Heuristic) ModelName() string { return "heuristic-v1" }

// Classify implements detect.Classifier. The score rises with marker
// hits per hundred words, floored at 0.05 and capped at 0.95 so the
// heuristic never claims certainty either way
func (h *Heuristic) Classify(_ context.Context, text string) (float64, error) {
	words := chunk.Count(text)
	if words == 0 {
		return 0, nil
	}
	hits := 0
	lower := strings.ToLower(text)
	for _, re := range h.res {
		hits += len(re.FindAllStringIndex(lower, -1))
	}
	perHundred := float64(hits) * 100 / float64(words)
	p := 0.05 + perHundred*0.12
	if p > 0.95 {
		p = 0.95
	}
	return p, nil
}
