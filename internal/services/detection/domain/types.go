// Package domain defines detection DTOs and ports
package domain

import "slidesift/internal/core/detect"

// SlideDetection is the per-slide entry of a deck report. Detection is
// nil when the slide was skipped or its classification was unavailable
type SlideDetection struct {
	Slide      int            `json:"slide"`
	UnitID     string         `json:"unit_id"`
	Text       string         `json:"text"`
	Skipped    bool           `json:"skipped,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
	Detection  *detect.Result `json:"detection,omitempty"`
}

// DeckReport summarizes detection over a whole deck. Every slide that
// could be parsed gets a row, with per-slide failures flagged instead
// of failing the report
type DeckReport struct {
	File        string           `json:"file"`
	Model       string           `json:"model"`
	Slides      int              `json:"slides"`
	AISlides    int              `json:"ai_slides"`
	HumanSlides int              `json:"human_slides"`
	Flagged     int              `json:"flagged_slides"`
	Results     []SlideDetection `json:"results"`
}
