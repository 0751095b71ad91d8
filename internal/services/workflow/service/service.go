// Package service generates n8n workflow documents wired against this API
package service

import (
	"strconv"

	"github.com/google/uuid"
)

// Service builds importable n8n workflows
type Service interface {
	Pipeline(apiBase string, threshold float64) map[string]any
	Detection(apiBase string) map[string]any
}

// Svc implements the Service interface
type Svc struct {
	defaultBase string
}

// New creates a workflow service with a default API base URL
func New(defaultBase string) *Svc {
	if defaultBase == "" {
		defaultBase = "http://localhost:4000"
	}
	return &Svc{defaultBase: defaultBase}
}

func (s *Svc) base(apiBase string) string {
	if apiBase == "" {
		return s.defaultBase
	}
	return apiBase
}

// Pipeline is the full webhook -> detect -> modify -> respond chain.
// Node ids are fresh per generation; node names carry the connections
func (s *Svc) Pipeline(apiBase string, threshold float64) map[string]any {
	api := s.base(apiBase)
	return map[string]any{
		"name":   "Slidesift Deck Pipeline",
		"active": false,
		"nodes": []any{
			node("Webhook", "n8n-nodes-base.webhook", 1, pos(250, 300), map[string]any{
				"path":         "process-deck",
				"httpMethod":   "POST",
				"responseMode": "responseNode",
			}),
			node("Detect Deck", "n8n-nodes-base.httpRequest", 3, pos(450, 300), map[string]any{
				"method":      "POST",
				"url":         api + "/api/v1/detection/deck",
				"sendBody":    true,
				"contentType": "multipart-form-data",
			}),
			node("Modify Deck", "n8n-nodes-base.httpRequest", 3, pos(650, 300), map[string]any{
				"method":      "POST",
				"url":         api + "/api/v1/modification/deck",
				"sendBody":    true,
				"contentType": "multipart-form-data",
				"options": map[string]any{
					"queryParameters": map[string]any{
						"parameters": []any{
							map[string]any{
								"name":  "confidence_threshold",
								"value": strconv.FormatFloat(threshold, 'f', -1, 64),
							},
						},
					},
				},
			}),
			node("Respond", "n8n-nodes-base.respondToWebhook", 1, pos(850, 300), map[string]any{
				"respondWith": "allIncomingItems",
			}),
		},
		"connections": map[string]any{
			"Webhook":     chain("Detect Deck"),
			"Detect Deck": chain("Modify Deck"),
			"Modify Deck": chain("Respond"),
		},
		"settings": map[string]any{},
	}
}

// Detection is the reduced webhook -> detect -> respond chain
func (s *Svc) Detection(apiBase string) map[string]any {
	api := s.base(apiBase)
	return map[string]any{
		"name":   "Slidesift Text Detection",
		"active": false,
		"nodes": []any{
			node("Webhook", "n8n-nodes-base.webhook", 1, pos(250, 300), map[string]any{
				"path":         "detect-ai",
				"httpMethod":   "POST",
				"responseMode": "responseNode",
			}),
			node("Detect Text", "n8n-nodes-base.httpRequest", 3, pos(450, 300), map[string]any{
				"method":      "POST",
				"url":         api + "/api/v1/detection/text",
				"sendBody":    true,
				"specifyBody": "json",
				"jsonBody":    `={{ {"text": $json.text} }}`,
			}),
			node("Respond", "n8n-nodes-base.respondToWebhook", 1, pos(650, 300), map[string]any{
				"respondWith": "allIncomingItems",
			}),
		},
		"connections": map[string]any{
			"Webhook":     chain("Detect Text"),
			"Detect Text": chain("Respond"),
		},
		"settings": map[string]any{},
	}
}

func node(name, typ string, typeVersion int, position []int, params map[string]any) map[string]any {
	return map[string]any{
		"id":          uuid.NewString(),
		"name":        name,
		"type":        typ,
		"typeVersion": typeVersion,
		"position":    position,
		"parameters":  params,
	}
}

func chain(next string) map[string]any {
	return map[string]any{
		"main": []any{
			[]any{map[string]any{"node": next, "type": "main", "index": 0}},
		},
	}
}

func pos(x, y int) []int { return []int{x, y} }
