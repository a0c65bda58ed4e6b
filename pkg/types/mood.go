// Package types defines the core domain model for the Solace wellness
// service: moods, per-event mood analyses, daily rollup summaries,
// journal entries, conversations, weekly plans, and breathing patterns.
package types

// Mood is the fixed classification taxonomy. Every classification output
// maps into this set; unrecognized values coerce to MoodNeutral.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodPeaceful   Mood = "peaceful"
	MoodExcited    Mood = "excited"
	MoodSad        Mood = "sad"
	MoodAnxious    Mood = "anxious"
	MoodFrustrated Mood = "frustrated"
	MoodNeutral    Mood = "neutral"
)

// AllMoods lists every valid mood in a stable order. Used by prompts and
// by the trend distribution calculation.
var AllMoods = []Mood{
	MoodHappy,
	MoodPeaceful,
	MoodExcited,
	MoodSad,
	MoodAnxious,
	MoodFrustrated,
	MoodNeutral,
}

// Valid reports whether m is a member of the mood taxonomy.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodPeaceful, MoodExcited, MoodSad, MoodAnxious, MoodFrustrated, MoodNeutral:
		return true
	}
	return false
}

// ParseMood coerces a raw string into the mood taxonomy.
// Unrecognized values become MoodNeutral rather than an error, so a
// sloppy upstream classification can never poison stored data.
func ParseMood(s string) Mood {
	m := Mood(s)
	if m.Valid() {
		return m
	}
	return MoodNeutral
}

// SourceKind tags the provenance of a piece of analyzed user content.
type SourceKind string

const (
	SourceJournal SourceKind = "journal"
	SourceVoice   SourceKind = "voice"
	SourceChat    SourceKind = "chat"
)

// Valid reports whether s is a recognized source kind.
func (s SourceKind) Valid() bool {
	switch s {
	case SourceJournal, SourceVoice, SourceChat:
		return true
	}
	return false
}

// ClampIntensity bounds an intensity value to the 1-10 scale.
func ClampIntensity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// ClampConfidence bounds a confidence value to [0, 1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
