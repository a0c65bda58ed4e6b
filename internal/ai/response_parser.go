package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/solacehq/solace/pkg/types"
)

// classificationResponse is the wire shape expected from the model for a
// classification call. Numeric fields are decoded as json.Number-friendly
// types so a model that emits "7.0" for intensity still parses.
type classificationResponse struct {
	PrimaryMood   string   `json:"primary_mood"`
	SecondaryMood string   `json:"secondary_mood"`
	Intensity     float64  `json:"intensity"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
	KeyEmotions   []string `json:"key_emotions"`
}

// planResponse is the wire shape expected from the model for plan
// generation.
type planResponse struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	TargetArea  string             `json:"target_area"`
	Insights    []string           `json:"insights"`
	Exercises   []exerciseResponse `json:"exercises"`
}

type exerciseResponse struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Type            string  `json:"type"`
	DurationMinutes float64 `json:"duration_minutes"`
	Difficulty      string  `json:"difficulty"`
	DayOfWeek       float64 `json:"day_of_week"`
}

// extractJSON extracts the first complete JSON object from a string that
// may contain extra text. Models add markdown fences and prose around
// JSON despite instructions; this strips them before decoding.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text
	}

	braceCount := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text
}

// FallbackClassification is the documented substitute used whenever the
// model is unreachable or returns something unusable: neutral mood,
// mid-scale intensity, low confidence, no emotions.
func FallbackClassification() *Classification {
	return &Classification{
		PrimaryMood: types.MoodNeutral,
		Intensity:   5,
		Confidence:  0.3,
		Reasoning:   "analysis failed",
		KeyEmotions: []string{},
	}
}

// ParseClassification decodes a classification reply into a bounded
// Classification. All fields are coerced into range rather than trusted:
// unknown moods become neutral, intensity clamps to [1,10], confidence
// to [0,1], and the emotion list is truncated to five entries.
// Returns an error only when the JSON itself is undecodable; the caller
// substitutes FallbackClassification in that case.
func ParseClassification(raw string) (*Classification, error) {
	var resp classificationResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("malformed classification response: %w", err)
	}

	c := &Classification{
		PrimaryMood: types.ParseMood(strings.ToLower(strings.TrimSpace(resp.PrimaryMood))),
		Intensity:   types.ClampIntensity(int(resp.Intensity)),
		Confidence:  types.ClampConfidence(resp.Confidence),
		Reasoning:   strings.TrimSpace(resp.Reasoning),
		KeyEmotions: cleanEmotions(resp.KeyEmotions, types.MaxKeyEmotions),
	}

	// A secondary mood is optional; only keep it when it names a real
	// mood distinct from the primary.
	if sec := strings.ToLower(strings.TrimSpace(resp.SecondaryMood)); sec != "" {
		if m := types.Mood(sec); m.Valid() && m != c.PrimaryMood {
			c.SecondaryMood = m
		}
	}

	return c, nil
}

// ParsePlan decodes a plan reply into a WeeklyPlan with every exercise
// coerced into bounds. Returns an error when the JSON is undecodable or
// the decoded plan carries no exercises at all; the caller substitutes
// the deterministic template in that case.
func ParsePlan(raw string) (*types.WeeklyPlan, error) {
	var resp planResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("malformed plan response: %w", err)
	}

	if strings.TrimSpace(resp.Title) == "" || len(resp.Exercises) == 0 {
		return nil, fmt.Errorf("plan response missing title or exercises")
	}

	plan := &types.WeeklyPlan{
		Title:       strings.TrimSpace(resp.Title),
		Description: strings.TrimSpace(resp.Description),
		TargetArea:  strings.TrimSpace(resp.TargetArea),
		Insights:    resp.Insights,
	}

	for _, ex := range resp.Exercises {
		if strings.TrimSpace(ex.Title) == "" {
			continue
		}
		day := int(ex.DayOfWeek)
		if day < 0 || day > 6 {
			day = 0
		}
		plan.Exercises = append(plan.Exercises, types.PlanExercise{
			Title:           strings.TrimSpace(ex.Title),
			Description:     strings.TrimSpace(ex.Description),
			Type:            types.ParseExerciseType(strings.ToLower(strings.TrimSpace(ex.Type))),
			DurationMinutes: types.ClampExerciseMinutes(int(ex.DurationMinutes)),
			Difficulty:      types.ParseDifficulty(strings.ToLower(strings.TrimSpace(ex.Difficulty))),
			DayOfWeek:       day,
		})
		if len(plan.Exercises) == 6 {
			break
		}
	}

	if len(plan.Exercises) < 2 {
		return nil, fmt.Errorf("plan response has %d usable exercises, need at least 2", len(plan.Exercises))
	}

	return plan, nil
}

// cleanEmotions trims, lowercases, dedups, and truncates an emotion list.
func cleanEmotions(raw []string, max int) []string {
	out := make([]string, 0, max)
	seen := make(map[string]bool)
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
		if len(out) == max {
			break
		}
	}
	return out
}

// TruncateTitle is the title-generation fallback: the seed text cut to a
// short prefix on a word boundary.
func TruncateTitle(seed string) string {
	seed = strings.TrimSpace(strings.Join(strings.Fields(seed), " "))
	if seed == "" {
		return "New conversation"
	}
	const maxLen = 40
	if len(seed) <= maxLen {
		return seed
	}
	cut := seed[:maxLen]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
