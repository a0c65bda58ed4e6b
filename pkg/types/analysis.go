package types

import "time"

// MaxKeyEmotions caps the key-emotion list on a single analysis entry.
const MaxKeyEmotions = 5

// MaxSummaryEmotions caps the merged emotion list on a daily summary.
const MaxSummaryEmotions = 10

// MoodAnalysis is one classification result for one piece of user content.
// Entries are created exactly once per successful classification and are
// immutable afterwards; the orchestrator never updates or deletes them.
type MoodAnalysis struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Source        SourceKind `json:"source"`
	SourceID      string     `json:"source_id"`      // journal entry, message, or session this came from
	PrimaryMood   Mood       `json:"primary_mood"`
	SecondaryMood Mood       `json:"secondary_mood,omitempty"` // empty when the classifier saw only one mood
	Intensity     int        `json:"intensity"`                // 1-10
	Confidence    float64    `json:"confidence"`               // 0-1
	Reasoning     string     `json:"reasoning"`
	KeyEmotions   []string   `json:"key_emotions,omitempty"` // at most MaxKeyEmotions
	AnalyzedText  string     `json:"analyzed_text"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Day returns the user-local calendar day the entry belongs to,
// formatted as YYYY-MM-DD. Rollups are keyed on this value.
func (a *MoodAnalysis) Day() string {
	return a.CreatedAt.Format("2006-01-02")
}

// DailySummary is the single aggregated mood record per user per calendar
// day, derived from all MoodAnalysis entries created that day. It is
// written with upsert semantics keyed by (user, date): recomputation
// overwrites, never appends duplicates.
type DailySummary struct {
	ID                string    `json:"id,omitempty"`
	UserID            string    `json:"user_id"`
	Date              string    `json:"date"` // YYYY-MM-DD, user-local
	PrimaryMood       Mood      `json:"primary_mood"`
	SecondaryMood     Mood      `json:"secondary_mood,omitempty"`
	AverageIntensity  float64   `json:"average_intensity"`
	OverallConfidence float64   `json:"overall_confidence"`
	Reasoning         string    `json:"reasoning"`
	KeyEmotions       []string  `json:"key_emotions,omitempty"` // at most MaxSummaryEmotions
	AnalysisCount     int       `json:"analysis_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TrendDirection labels the week-over-week intensity movement.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// MoodTrends is the read-only view over the last N daily summaries.
type MoodTrends struct {
	Days             int              `json:"days"`
	SummaryCount     int              `json:"summary_count"`
	AverageIntensity float64          `json:"average_intensity"`
	DominantMood     Mood             `json:"dominant_mood"`
	Distribution     map[Mood]float64 `json:"distribution"` // percent of days per mood
	Trend            TrendDirection   `json:"trend"`
}
