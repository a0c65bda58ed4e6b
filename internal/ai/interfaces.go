// Package ai wraps the hosted Gemini generative-language API behind small
// gateway interfaces: free-text chat turns, structured mood classification,
// title generation, weekly-plan generation, and text embeddings. The
// gateway is treated as an unreliable, latent, rate-limited black box;
// every structured operation carries a documented fallback so callers
// never see a half-trusted payload.
package ai

import (
	"context"
	"errors"

	"github.com/solacehq/solace/pkg/types"
)

// ErrUnavailable is returned when the gateway cannot reach the model at
// all (no API key, network failure, open circuit). Structured operations
// recover from it internally; Chat surfaces it to the caller.
var ErrUnavailable = errors.New("ai gateway unavailable")

// Classification is the structured output of a mood classification call.
// Values are always within range: the parser clamps intensity to [1,10],
// confidence to [0,1], coerces moods into the taxonomy, and truncates
// key emotions to types.MaxKeyEmotions.
type Classification struct {
	PrimaryMood   types.Mood
	SecondaryMood types.Mood // MoodNeutral-or-empty when absent
	Intensity     int
	Confidence    float64
	Reasoning     string
	KeyEmotions   []string
}

// MoodPattern summarizes the user's recent mood history for plan
// generation.
type MoodPattern struct {
	DominantMood     types.Mood
	AverageIntensity float64
	Trend            types.TrendDirection
	KeyEmotions      []string
}

// ChatSession is an open conversation handle. The model-side history
// lives inside the handle; callers own exactly one handle per logical
// conversation and must not share it across surfaces.
type ChatSession interface {
	// Send submits one user turn and returns the assistant reply.
	// Exactly one Send may be in flight at a time per session.
	Send(ctx context.Context, message string) (string, error)
}

// Gateway is the full AI surface consumed by the rest of the service.
type Gateway interface {
	// StartChat opens a fresh conversation with the supportive-companion
	// system prompt, optionally seeded with prior turns.
	StartChat(ctx context.Context, history []types.Message) (ChatSession, error)

	// Classify analyzes one piece of user text against the fixed mood
	// taxonomy. The error is advisory: a non-nil Classification is
	// always returned, falling back to neutral/low-confidence.
	Classify(ctx context.Context, text string, source types.SourceKind) (*Classification, error)

	// GenerateTitle produces a short title for a conversation from its
	// seed text, falling back to a truncation of the seed.
	GenerateTitle(ctx context.Context, seed string) string

	// GeneratePlan produces a weekly wellness plan for the given mood
	// pattern. Malformed model output is replaced by a deterministic
	// template keyed on the dominant mood, so the plan is never nil
	// and always carries 2-6 clamped exercises.
	GeneratePlan(ctx context.Context, pattern MoodPattern) *types.WeeklyPlan
}

// EmbeddingGenerator is the interface for generating vector embeddings.
// Used for related-journal-entry lookup; optional, may be nil.
type EmbeddingGenerator interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	GetModel() string
}
