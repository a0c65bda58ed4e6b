package types

import (
	"testing"
	"time"
)

func TestClampExerciseMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{0, 5},
		{4, 5},
		{5, 5},
		{15, 15},
		{30, 30},
		{45, 30},
	}

	for _, tt := range tests {
		if got := ClampExerciseMinutes(tt.input); got != tt.want {
			t.Errorf("ClampExerciseMinutes(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseExerciseType(t *testing.T) {
	if got := ParseExerciseType("breathing"); got != ExerciseBreathing {
		t.Errorf("ParseExerciseType(breathing) = %q", got)
	}
	if got := ParseExerciseType("yoga"); got != ExerciseMindfulness {
		t.Errorf("unknown type should default to mindfulness, got %q", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	if got := ParseDifficulty("hard"); got != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q", got)
	}
	if got := ParseDifficulty("extreme"); got != DifficultyEasy {
		t.Errorf("unknown difficulty should default to easy, got %q", got)
	}
}

func TestBreathingPatternValid(t *testing.T) {
	ok := BreathingPattern{Name: "simple", Inhale: 6 * time.Second, Exhale: 6 * time.Second}
	if !ok.Valid() {
		t.Error("pattern with non-zero phases should be valid")
	}
	if ok.CycleDuration() != 12*time.Second {
		t.Errorf("CycleDuration = %v, want 12s", ok.CycleDuration())
	}

	empty := BreathingPattern{Name: "empty"}
	if empty.Valid() {
		t.Error("all-zero pattern must be invalid")
	}
}
