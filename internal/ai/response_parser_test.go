package ai

import (
	"testing"

	"github.com/solacehq/solace/pkg/types"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON object",
			input: `{"primary_mood": "sad"}`,
			want:  `{"primary_mood": "sad"}`,
		},
		{
			name:  "JSON with markdown code block",
			input: "```json\n{\"primary_mood\": \"sad\"}\n```",
			want:  `{"primary_mood": "sad"}`,
		},
		{
			name:  "JSON with surrounding prose",
			input: "Here is the classification:\n{\"primary_mood\": \"sad\"}\nHope this helps!",
			want:  `{"primary_mood": "sad"}`,
		},
		{
			name:  "nested object",
			input: `{"outer": {"inner": 1}}`,
			want:  `{"outer": {"inner": 1}}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"reasoning": "said \"fine\" but wasn't"}`,
			want:  `{"reasoning": "said \"fine\" but wasn't"}`,
		},
		{
			name:  "no JSON present",
			input: "I cannot classify this",
			want:  "I cannot classify this",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClassification_CoercesOutOfRangeValues(t *testing.T) {
	raw := `{
		"primary_mood": "ANXIOUS-ish",
		"secondary_mood": "sad",
		"intensity": 37,
		"confidence": 2.4,
		"reasoning": " lots of work pressure ",
		"key_emotions": ["stressed", "Stressed", "overwhelmed", "tired", "worried", "tense", "frazzled"]
	}`

	c, err := ParseClassification(raw)
	if err != nil {
		t.Fatalf("ParseClassification failed: %v", err)
	}

	if c.PrimaryMood != types.MoodNeutral {
		t.Errorf("unknown primary mood should coerce to neutral, got %q", c.PrimaryMood)
	}
	if c.SecondaryMood != types.MoodSad {
		t.Errorf("SecondaryMood = %q, want sad", c.SecondaryMood)
	}
	if c.Intensity != 10 {
		t.Errorf("Intensity = %d, want clamp to 10", c.Intensity)
	}
	if c.Confidence != 1 {
		t.Errorf("Confidence = %v, want clamp to 1", c.Confidence)
	}
	if len(c.KeyEmotions) != types.MaxKeyEmotions {
		t.Errorf("KeyEmotions length = %d, want %d", len(c.KeyEmotions), types.MaxKeyEmotions)
	}
	// Dedup must keep first-seen order.
	if c.KeyEmotions[0] != "stressed" || c.KeyEmotions[1] != "overwhelmed" {
		t.Errorf("emotion order/dedup wrong: %v", c.KeyEmotions)
	}
}

func TestParseClassification_SecondarySameAsPrimaryDropped(t *testing.T) {
	raw := `{"primary_mood": "happy", "secondary_mood": "happy", "intensity": 7, "confidence": 0.9}`
	c, err := ParseClassification(raw)
	if err != nil {
		t.Fatalf("ParseClassification failed: %v", err)
	}
	if c.SecondaryMood != "" {
		t.Errorf("duplicate secondary mood should be dropped, got %q", c.SecondaryMood)
	}
}

func TestParseClassification_MalformedJSON(t *testing.T) {
	if _, err := ParseClassification("the user seems fine to me"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestFallbackClassification(t *testing.T) {
	c := FallbackClassification()
	if c.PrimaryMood != types.MoodNeutral || c.Intensity != 5 || c.Confidence != 0.3 {
		t.Errorf("unexpected fallback values: %+v", c)
	}
	if c.Reasoning != "analysis failed" {
		t.Errorf("Reasoning = %q", c.Reasoning)
	}
	if len(c.KeyEmotions) != 0 {
		t.Errorf("fallback must carry no emotions, got %v", c.KeyEmotions)
	}
}

func TestParsePlan_ClampsExercises(t *testing.T) {
	raw := `{
		"title": "Test Plan",
		"description": "A plan.",
		"target_area": "stress",
		"insights": ["one"],
		"exercises": [
			{"title": "A", "type": "breathing", "duration_minutes": 2, "difficulty": "easy", "day_of_week": 0},
			{"title": "B", "type": "swimming", "duration_minutes": 90, "difficulty": "brutal", "day_of_week": 12}
		]
	}`

	plan, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("ParsePlan failed: %v", err)
	}

	if plan.Exercises[0].DurationMinutes != 5 {
		t.Errorf("duration below minimum should clamp to 5, got %d", plan.Exercises[0].DurationMinutes)
	}
	if plan.Exercises[1].DurationMinutes != 30 {
		t.Errorf("duration above maximum should clamp to 30, got %d", plan.Exercises[1].DurationMinutes)
	}
	if plan.Exercises[1].Type != types.ExerciseMindfulness {
		t.Errorf("unknown exercise type should default to mindfulness, got %q", plan.Exercises[1].Type)
	}
	if plan.Exercises[1].Difficulty != types.DifficultyEasy {
		t.Errorf("unknown difficulty should default to easy, got %q", plan.Exercises[1].Difficulty)
	}
	if plan.Exercises[1].DayOfWeek != 0 {
		t.Errorf("out-of-range day should reset to 0, got %d", plan.Exercises[1].DayOfWeek)
	}
}

func TestParsePlan_RejectsUnusablePlans(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not JSON", "here is your plan: rest more"},
		{"no exercises", `{"title": "Empty", "exercises": []}`},
		{"single exercise", `{"title": "Thin", "exercises": [{"title": "A", "type": "breathing", "duration_minutes": 10, "difficulty": "easy"}]}`},
		{"no title", `{"exercises": [{"title": "A"}, {"title": "B"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePlan(tc.raw); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short seed kept", "Feeling better today", "Feeling better today"},
		{"empty seed", "   ", "New conversation"},
		{"long seed cut on word boundary", "I had a really stressful day at work and I cannot stop thinking about it", "I had a really stressful day at work..."},
		{"whitespace collapsed", "hello\n\n  world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateTitle(tt.input); got != tt.want {
				t.Errorf("TruncateTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
