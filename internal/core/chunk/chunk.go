// Package chunk splits text into token-bounded segments sized to a
// classifier's maximum input length.
//
// A token here is a whitespace-delimited word. That is a documented
// approximation of a model tokenizer's notion of a token, conservative
// enough that word-token-bounded chunks stay inside model limits
package chunk

import "strings"

// DefaultMaxTokens matches the input ceiling of the detection models
const DefaultMaxTokens = 512

// Count returns the number of word tokens in text
func Count(text string) int {
	return len(strings.Fields(text))
}

// Split breaks text into ordered chunks of at most maxTokens word
// tokens each, never splitting inside a token. Empty or whitespace-only
// input yields no chunks; maxTokens below 1 falls back to the default
func Split(text string, maxTokens int) []string {
	if maxTokens < 1 {
		maxTokens = DefaultMaxTokens
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+maxTokens-1)/maxTokens)
	for start := 0; start < len(words); start += maxTokens {
		end := start + maxTokens
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
