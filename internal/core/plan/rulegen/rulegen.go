// Package rulegen is a rule-based paraphraser used as the default
// content generator. It swaps wordy constructions associated with
// machine-generated prose for plain ones and applies a few sentence
// simplification passes. For higher quality, wire a model-backed
// generator instead
package rulegen

import (
	"context"
	"regexp"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ordered so generation is deterministic
var phrases = []struct{ from, to string }{
	{"utilize", "use"},
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"at this point in time", "now"},
	{"in the event that", "if"},
	{"for the purpose of", "to"},
	{"prior to", "before"},
	{"subsequent to", "after"},
	{"in close proximity to", "near"},
	{"is able to", "can"},
	{"has the ability to", "can"},
	{"in spite of", "despite"},
	{"on a regular basis", "regularly"},
	{"in the near future", "soon"},
	{"at the present time", "currently"},
	{"make a decision", "decide"},
	{"give consideration to", "consider"},
	{"make an assumption", "assume"},
	{"conduct an investigation", "investigate"},
	{"perform an analysis", "analyze"},
}

var (
	reThatThat = regexp.MustCompile(`(?i)\bthat\s+that\b`)
	reIsBeing  = regexp.MustCompile(`(?i)\bis being\s+(\w+ed)\b`)
	reVeryVery = regexp.MustCompile(`(?i)\bvery\s+very\b`)
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Generator applies the rule set. Safe for concurrent use
type Generator struct {
	rules  []rule
	titler cases.Caser
}

// New compiles the rule set
func New() *Generator {
	g := &Generator{titler: cases.Title(language.English)}
	for _, p := range phrases {
		g.rules = append(g.rules, rule{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.from) + `\b`),
			repl: p.to,
		})
	}
	return g
}

// Generate rewrites text phrase by phrase, case-insensitively, keeping
// a leading capital on replacements that matched a capitalized phrase
func (g *Generator) Generate(_ context.Context, text string) (string, error) {
	out := text
	for _, r := range g.rules {
		repl := r.repl
		out = r.re.ReplaceAllStringFunc(out, func(m string) string {
			if first, _ := utf8.DecodeRuneInString(m); unicode.IsUpper(first) {
				return g.titler.String(repl)
			}
			return repl
		})
	}
	out = reThatThat.ReplaceAllString(out, "that")
	out = reIsBeing.ReplaceAllString(out, "is $1")
	out = reVeryVery.ReplaceAllString(out, "very")
	return out, nil
}
