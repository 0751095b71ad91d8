// Package inference provides classifier implementations for the
// detection pipeline: an HTTP client for a hosted inference server and
// an offline heuristic scorer for development
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "slidesift/internal/platform/errors"
	"slidesift/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api-inference.huggingface.co"
	defaultTimeout   = 15 * time.Second
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL string
	// Model is the hosted model id, e.g. openai-community/roberta-base-openai-detector
	Model   string
	Token   string
	Timeout time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client talks to a text-classification inference endpoint and maps its
// label scores to a single AI-class probability. Safe for concurrent
// use; callers share one instance per process
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) (*Client, error) {
	if o.Model == "" {
		return nil, perr.InvalidArgf("inference model is required")
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("inference"),
		sleep: time.Sleep,
	}, nil
}

// ModelName implements detect.Classifier
func (c *Client) ModelName() string { return c.opts.Model }

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify implements detect.Classifier. It posts the text to the
// endpoint and retries transient failures with exponential backoff;
// the error it returns is per-chunk catchable by the aggregator
func (c *Client) Classify(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(map[string]any{
		"inputs":  text,
		"options": map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeUnknown, "inference encode request")
	}
	url := strings.TrimRight(c.opts.BaseURL, "/") + "/models/" + c.opts.Model

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return 0, perr.Wrapf(err, perr.ErrorCodeUnknown, "inference new request")
		}
		req.Header.Set("Content-Type", "application/json")
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.Token)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			if !c.shouldRetry(attempts) {
				return 0, perr.Wrapf(err, perr.ErrorCodeClassifier, "inference do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("inference transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("model", c.opts.Model).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", time.Since(start)).
			Msg("inference http response")

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if err != nil {
				return 0, perr.Wrapf(err, perr.ErrorCodeClassifier, "inference read response")
			}
			return aiProbability(body)
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if !c.shouldRetry(attempts) {
				return 0, perr.Classifierf("inference unavailable after %d attempts (status %d)", attempts+1, resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("status", resp.StatusCode).Msg("inference transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return 0, perr.Classifierf("inference unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) shouldRetry(attempt int) bool { return attempt < c.opts.MaxRetries }

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	if limit := int64(10 * time.Second / time.Millisecond); ms > limit {
		ms = limit
	}
	return time.Duration(ms) * time.Millisecond
}

// aiProbability extracts the AI-class mass from a text-classification
// response, which arrives as [[{label,score}...]] or [{label,score}...].
// Detector models disagree on label spelling, so both class vocabularies
// are recognized and a human-class score is inverted when that is all
// the model reports
func aiProbability(body []byte) (float64, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err != nil {
		var flat []labelScore
		if err2 := json.Unmarshal(body, &flat); err2 != nil {
			return 0, perr.Classifierf("inference unparseable response %s", truncated(body))
		}
		nested = [][]labelScore{flat}
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return 0, perr.Classifierf("inference empty response")
	}
	for _, ls := range nested[0] {
		if isAILabel(ls.Label) {
			return ls.Score, nil
		}
	}
	for _, ls := range nested[0] {
		if isHumanLabel(ls.Label) {
			return 1 - ls.Score, nil
		}
	}
	return 0, perr.Classifierf("inference unrecognized labels in %s", truncated(body))
}

func isAILabel(l string) bool {
	switch strings.ToLower(l) {
	case "ai", "fake", "machine", "generated", "chatgpt", "label_1":
		return true
	}
	return false
}

func isHumanLabel(l string) bool {
	switch strings.ToLower(l) {
	case "human", "real", "label_0":
		return true
	}
	return false
}

func truncated(b []byte) string {
	const max = 256
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
