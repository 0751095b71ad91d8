// Command slidesift-scan runs detection (and optionally rewriting) against
// a local .pptx without the HTTP layer
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"slidesift/internal/platform/config"
	"slidesift/internal/platform/logger"

	"slidesift/internal/adapters/inference"
	"slidesift/internal/core/detect"
	"slidesift/internal/core/extract"
	"slidesift/internal/core/mutate"
	"slidesift/internal/core/plan"
	"slidesift/internal/core/plan/rulegen"
	"slidesift/internal/core/pptx"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	var (
		file      = flag.String("file", "", "path to a .pptx deck (required)")
		rewrite   = flag.Bool("rewrite", false, "rewrite flagged slides and save alongside the input")
		threshold = flag.Float64("threshold", plan.DefaultThreshold, "confidence threshold for rewriting (0..1)")
		fontName  = flag.String("font", "", "font name to apply to all slides")
		textColor = flag.String("color", "", "hex text color to apply to all slides, e.g. 1F2937")
		timeout   = flag.Duration("timeout", 5*time.Minute, "overall deadline")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	raw, err := os.ReadFile(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("read failed")
	}

	deck, err := pptx.Open(raw)
	if err != nil {
		l.Fatal().Err(err).Msg("not a usable .pptx")
	}

	cls := buildClassifier()
	agg := detect.New(cls, detect.Options{})

	units := extract.Extract(deck)
	report := scan(ctx, l, agg, units)

	if *rewrite {
		reps, skips := planReplacements(ctx, agg, units, *threshold)
		mr := mutate.ReplaceContent(deck, reps)
		mr.Skipped = append(skips, mr.Skipped...)
		report["replacements"] = mr

		if *fontName != "" || *textColor != "" {
			cfg := mutate.StyleConfig{FontName: *fontName}
			if *textColor != "" {
				cfg.Colors = &mutate.ColorScheme{TextColor: *textColor}
			}
			if err := mutate.ModifyStyles(deck, cfg); err != nil {
				l.Fatal().Err(err).Msg("style pass failed")
			}
		}

		out := filepath.Join(filepath.Dir(*file), "modified_"+filepath.Base(*file))
		b, err := deck.Bytes()
		if err != nil {
			l.Fatal().Err(err).Msg("repack failed")
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			l.Fatal().Err(err).Msg("write failed")
		}
		report["output"] = out
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		l.Fatal().Err(err).Msg("encode failed")
	}
}

type slideRow struct {
	Slide     int            `json:"slide"`
	Skipped   bool           `json:"skipped,omitempty"`
	Detection *detect.Result `json:"detection,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func scan(ctx context.Context, l *logger.Logger, agg *detect.Aggregator, units []extract.TextUnit) map[string]any {
	rows := make([]slideRow, 0, len(units))
	ai := 0
	for _, u := range units {
		row := slideRow{Slide: u.Locator.Slide, Skipped: u.Skipped}
		if !u.Skipped {
			res, err := agg.Detect(ctx, u.Text)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Detection = &res
				if res.Label == detect.LabelAI {
					ai++
				}
			}
		}
		rows = append(rows, row)
	}
	l.Info().Int("slides", len(rows)).Int("ai", ai).Msg("scan complete")
	return map[string]any{
		"slides":    len(rows),
		"ai_slides": ai,
		"results":   rows,
	}
}

func planReplacements(ctx context.Context, agg *detect.Aggregator, units []extract.TextUnit, threshold float64) ([]plan.Replacement, []mutate.Skip) {
	var (
		keep    []extract.TextUnit
		results []detect.Result
		skips   []mutate.Skip
	)
	for _, u := range units {
		if u.Skipped || u.Text == "" {
			continue
		}
		res, err := agg.Detect(ctx, u.Text)
		if err != nil {
			skips = append(skips, mutate.Skip{UnitID: u.UnitID, Slide: u.Locator.Slide, Reason: "classification unavailable"})
			continue
		}
		keep = append(keep, u)
		results = append(results, res)
	}

	planner := plan.New(rulegen.New())
	p, err := planner.Build(ctx, keep, results, threshold)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("planning failed")
	}
	for _, s := range p.Skipped {
		skips = append(skips, mutate.Skip{UnitID: s.UnitID, Reason: s.Reason})
	}
	return p.Replacements, skips
}

func buildClassifier() detect.Classifier {
	cfg := config.New().Prefix("DETECT_")
	model := cfg.MayString("MODEL", "")
	if model == "" {
		return inference.NewHeuristic()
	}
	cls, err := inference.NewClient(inference.Options{
		BaseURL: cfg.MayString("API_URL", ""),
		Model:   model,
		Token:   cfg.MayString("API_TOKEN", ""),
	})
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("inference client init failed")
	}
	return cls
}
