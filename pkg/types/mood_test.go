package types

import "testing"

func TestParseMood(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mood
	}{
		{"known mood", "anxious", MoodAnxious},
		{"another known mood", "peaceful", MoodPeaceful},
		{"unknown mood coerces to neutral", "melancholy", MoodNeutral},
		{"empty string coerces to neutral", "", MoodNeutral},
		{"case sensitive, wrong case coerces", "Happy", MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMood(tt.input); got != tt.want {
				t.Errorf("ParseMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClampIntensity(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{5, 5},
		{10, 10},
		{11, 10},
		{999, 10},
	}

	for _, tt := range tests {
		if got := ClampIntensity(tt.input); got != tt.want {
			t.Errorf("ClampIntensity(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.7, 1},
	}

	for _, tt := range tests {
		if got := ClampConfidence(tt.input); got != tt.want {
			t.Errorf("ClampConfidence(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAllMoodsValid(t *testing.T) {
	for _, m := range AllMoods {
		if !m.Valid() {
			t.Errorf("mood %q in AllMoods is not valid", m)
		}
	}
}

func TestSourceKindValid(t *testing.T) {
	for _, s := range []SourceKind{SourceJournal, SourceVoice, SourceChat} {
		if !s.Valid() {
			t.Errorf("source kind %q should be valid", s)
		}
	}
	if SourceKind("email").Valid() {
		t.Error("unexpected source kind accepted")
	}
}
