package handlers

import (
	"net/http"

	"github.com/solacehq/solace/internal/session"
	"github.com/solacehq/solace/pkg/types"
)

// BreathingHandlers serves the breathing exercise catalog. The timing
// state machine itself runs client-side (or per voice connection); the
// server only publishes the pattern definitions.
type BreathingHandlers struct {
	patterns []types.BreathingPattern
}

// NewBreathingHandlers creates the breathing route handlers with the
// given pattern catalog.
func NewBreathingHandlers(patterns []types.BreathingPattern) *BreathingHandlers {
	if len(patterns) == 0 {
		patterns = session.DefaultPatterns()
	}
	return &BreathingHandlers{patterns: patterns}
}

type breathingPatternResponse struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	Inhale       float64 `json:"inhale_seconds"`
	Hold1        float64 `json:"hold1_seconds"`
	Exhale       float64 `json:"exhale_seconds"`
	Hold2        float64 `json:"hold2_seconds"`
	CycleSeconds float64 `json:"cycle_seconds"`
}

// ListPatterns handles GET /api/breathing/patterns.
func (h *BreathingHandlers) ListPatterns(w http.ResponseWriter, r *http.Request) {
	out := make([]breathingPatternResponse, 0, len(h.patterns))
	for _, p := range h.patterns {
		out = append(out, breathingPatternResponse{
			Name:         p.Name,
			Label:        p.Label,
			Inhale:       p.Inhale.Seconds(),
			Hold1:        p.Hold1.Seconds(),
			Exhale:       p.Exhale.Seconds(),
			Hold2:        p.Hold2.Seconds(),
			CycleSeconds: p.CycleDuration().Seconds(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
