package ai

import "github.com/solacehq/solace/pkg/types"

// TemplatePlan returns the deterministic fallback weekly plan for a
// dominant mood. Used whenever the model's plan output fails to parse,
// so plan generation always hands the caller a complete, in-bounds plan.
func TemplatePlan(mood types.Mood) *types.WeeklyPlan {
	base := templatePlans[mood]
	if base == nil {
		base = templatePlans[types.MoodNeutral]
	}

	// Copy so callers can attach IDs without mutating the template.
	plan := &types.WeeklyPlan{
		Title:       base.Title,
		Description: base.Description,
		TargetArea:  base.TargetArea,
		Insights:    append([]string(nil), base.Insights...),
		Exercises:   append([]types.PlanExercise(nil), base.Exercises...),
	}
	return plan
}

var templatePlans = map[types.Mood]*types.WeeklyPlan{
	types.MoodAnxious: {
		Title:       "Calm Foundations",
		Description: "A week of short grounding practices to take the edge off anxious days.",
		TargetArea:  "anxiety relief",
		Insights:    []string{"Anxious stretches respond well to slow, regular breathing.", "Naming worries on paper makes them smaller."},
		Exercises: []types.PlanExercise{
			{Title: "Box breathing", Description: "Four counts in, hold, out, hold. Repeat for the full session.", Type: types.ExerciseBreathing, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 0},
			{Title: "Worry download", Description: "Write every worry down without judging or solving any of them.", Type: types.ExerciseJournaling, DurationMinutes: 10, Difficulty: types.DifficultyEasy, DayOfWeek: 2},
			{Title: "Body scan", Description: "Move attention slowly from toes to head, releasing tension as you go.", Type: types.ExerciseMindfulness, DurationMinutes: 15, Difficulty: types.DifficultyMedium, DayOfWeek: 4},
			{Title: "Evening walk", Description: "A gentle walk outside, no phone, noticing five things you can see.", Type: types.ExercisePhysical, DurationMinutes: 20, Difficulty: types.DifficultyEasy, DayOfWeek: 6},
		},
	},
	types.MoodSad: {
		Title:       "Gentle Lift",
		Description: "Small, kind activities to reintroduce moments of lightness to heavy days.",
		TargetArea:  "mood lifting",
		Insights:    []string{"Low moods shrink when activity comes before motivation.", "Gratitude practice works even when it feels forced at first."},
		Exercises: []types.PlanExercise{
			{Title: "Three good things", Description: "Write three things that went okay today, however small.", Type: types.ExerciseJournaling, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 0},
			{Title: "Reach out", Description: "Send one message to someone you trust, even just to say hello.", Type: types.ExerciseBehavioral, DurationMinutes: 5, Difficulty: types.DifficultyMedium, DayOfWeek: 2},
			{Title: "Sunlight break", Description: "Ten minutes outside in daylight, ideally in the morning.", Type: types.ExercisePhysical, DurationMinutes: 10, Difficulty: types.DifficultyEasy, DayOfWeek: 3},
			{Title: "Kind reframe", Description: "Take one harsh self-judgment and rewrite it as you would for a friend.", Type: types.ExerciseCognitive, DurationMinutes: 10, Difficulty: types.DifficultyMedium, DayOfWeek: 5},
		},
	},
	types.MoodFrustrated: {
		Title:       "Pressure Release",
		Description: "Practices for discharging frustration before it hardens into resentment.",
		TargetArea:  "stress reduction",
		Insights:    []string{"Frustration drains faster through the body than through rumination."},
		Exercises: []types.PlanExercise{
			{Title: "Long exhale breathing", Description: "Inhale four counts, exhale eight. The long exhale downshifts the nervous system.", Type: types.ExerciseBreathing, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 0},
			{Title: "Unsent letter", Description: "Write the angry letter you will never send. Then close the notebook.", Type: types.ExerciseJournaling, DurationMinutes: 15, Difficulty: types.DifficultyMedium, DayOfWeek: 2},
			{Title: "Brisk walk or run", Description: "Twenty minutes of whatever pace burns the charge off.", Type: types.ExercisePhysical, DurationMinutes: 20, Difficulty: types.DifficultyMedium, DayOfWeek: 4},
		},
	},
	types.MoodHappy: {
		Title:       "Keep It Going",
		Description: "Practices that anchor a good stretch so it lasts longer.",
		TargetArea:  "sustaining wellbeing",
		Insights:    []string{"Good periods are the best time to build habits you can lean on later."},
		Exercises: []types.PlanExercise{
			{Title: "Savoring journal", Description: "Describe one good moment in detail - what you saw, heard, felt.", Type: types.ExerciseJournaling, DurationMinutes: 10, Difficulty: types.DifficultyEasy, DayOfWeek: 1},
			{Title: "Share the good", Description: "Tell someone about something that went well this week.", Type: types.ExerciseBehavioral, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 3},
			{Title: "Mindful minute", Description: "One quiet minute noticing the breath, three times today.", Type: types.ExerciseMindfulness, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 5},
		},
	},
	types.MoodNeutral: {
		Title:       "Steady Week",
		Description: "A balanced mix of reflection, breath, and movement for an even keel.",
		TargetArea:  "general wellbeing",
		Insights:    []string{"Consistency in small practices matters more than intensity."},
		Exercises: []types.PlanExercise{
			{Title: "Morning check-in", Description: "One sentence about how you feel before the day starts.", Type: types.ExerciseJournaling, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 0},
			{Title: "Simple breathing", Description: "Six seconds in, six seconds out, for the full session.", Type: types.ExerciseBreathing, DurationMinutes: 5, Difficulty: types.DifficultyEasy, DayOfWeek: 2},
			{Title: "Stretch break", Description: "Slow full-body stretching, paying attention to where you hold tension.", Type: types.ExercisePhysical, DurationMinutes: 10, Difficulty: types.DifficultyEasy, DayOfWeek: 4},
			{Title: "Week in review", Description: "What gave you energy this week, and what took it away?", Type: types.ExerciseCognitive, DurationMinutes: 15, Difficulty: types.DifficultyMedium, DayOfWeek: 6},
		},
	},
}

func init() {
	// The calm and excited templates reuse neighbouring plans: peaceful
	// maps to the happy plan, excited to the neutral one.
	templatePlans[types.MoodPeaceful] = templatePlans[types.MoodHappy]
	templatePlans[types.MoodExcited] = templatePlans[types.MoodNeutral]
}
