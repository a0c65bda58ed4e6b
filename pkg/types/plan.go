package types

import "time"

// ExerciseType is the fixed set of weekly-plan exercise categories.
type ExerciseType string

const (
	ExerciseBreathing   ExerciseType = "breathing"
	ExerciseJournaling  ExerciseType = "journaling"
	ExerciseMindfulness ExerciseType = "mindfulness"
	ExerciseBehavioral  ExerciseType = "behavioral"
	ExerciseCognitive   ExerciseType = "cognitive"
	ExercisePhysical    ExerciseType = "physical"
)

// Valid reports whether t is a recognized exercise type.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseBreathing, ExerciseJournaling, ExerciseMindfulness,
		ExerciseBehavioral, ExerciseCognitive, ExercisePhysical:
		return true
	}
	return false
}

// ParseExerciseType coerces a raw string to a valid exercise type,
// defaulting to mindfulness for anything unrecognized.
func ParseExerciseType(s string) ExerciseType {
	t := ExerciseType(s)
	if t.Valid() {
		return t
	}
	return ExerciseMindfulness
}

// Difficulty grades a plan exercise.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty coerces a raw string to a valid difficulty,
// defaulting to easy.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	}
	return DifficultyEasy
}

// Exercise duration bounds in minutes.
const (
	MinExerciseMinutes = 5
	MaxExerciseMinutes = 30
)

// ClampExerciseMinutes bounds an exercise duration to [5, 30] minutes.
func ClampExerciseMinutes(v int) int {
	if v < MinExerciseMinutes {
		return MinExerciseMinutes
	}
	if v > MaxExerciseMinutes {
		return MaxExerciseMinutes
	}
	return v
}

// WeeklyPlan is an AI-generated wellness plan covering one week.
type WeeklyPlan struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	TargetArea  string         `json:"target_area"` // e.g. "stress reduction"
	Insights    []string       `json:"insights,omitempty"`
	WeekStart   string         `json:"week_start"` // YYYY-MM-DD, Monday
	CreatedAt   time.Time      `json:"created_at"`
	Exercises   []PlanExercise `json:"exercises"`
}

// PlanExercise is a single scheduled exercise within a weekly plan.
type PlanExercise struct {
	ID              string       `json:"id"`
	PlanID          string       `json:"plan_id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Type            ExerciseType `json:"type"`
	DurationMinutes int          `json:"duration_minutes"` // clamped to [5, 30]
	Difficulty      Difficulty   `json:"difficulty"`
	DayOfWeek       int          `json:"day_of_week"` // 0 = Monday
	Completed       bool         `json:"completed"`
}
