package ai

import (
	"fmt"
	"strings"

	"github.com/solacehq/solace/pkg/types"
)

// companionSystemPrompt frames every chat session. The persona is a
// supportive listener, never a clinician; it must not diagnose.
const companionSystemPrompt = `You are Solace, a warm, supportive wellness companion.
You listen with empathy, reflect feelings back, and gently encourage healthy habits.
You are not a therapist or doctor: never diagnose, never prescribe, and suggest
professional help when someone describes serious distress or risk of harm.
Keep replies short (2-4 sentences), conversational, and kind.`

// apologyReply is the fixed degraded chat line used when the model is
// unreachable mid-conversation.
const apologyReply = "I'm sorry, I'm having trouble responding right now. I'm still here with you - could you try saying that again in a moment?"

// ClassificationPrompt builds a strict JSON-only prompt that classifies
// one piece of user content against the fixed mood taxonomy.
func ClassificationPrompt(text string, source types.SourceKind) string {
	moods := make([]string, len(types.AllMoods))
	for i, m := range types.AllMoods {
		moods[i] = string(m)
	}

	return fmt.Sprintf(`TASK: Classify the emotional state expressed in user content.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO explanations.

MOODS (ONLY these values): %s

REQUIRED JSON STRUCTURE:
{
  "primary_mood": "<mood>",
  "secondary_mood": "<mood or empty string>",
  "intensity": <integer 1-10>,
  "confidence": <number 0-1>,
  "reasoning": "<one sentence>",
  "key_emotions": ["<up to 5 short emotion words>"]
}

CONTENT SOURCE: %s
CONTENT:
%s`, strings.Join(moods, ", "), source, text)
}

// TitlePrompt asks for a short conversation title seeded by the first
// user message.
func TitlePrompt(seed string) string {
	return fmt.Sprintf(`TASK: Write a short title (3-6 words) for a supportive conversation
that starts with the message below. Respond with the title only - no quotes,
no punctuation at the end, no extra text.

MESSAGE:
%s`, seed)
}

// PlanPrompt builds a strict JSON-only prompt for weekly plan generation
// from the user's recent mood pattern.
func PlanPrompt(pattern MoodPattern) string {
	emotions := "none recorded"
	if len(pattern.KeyEmotions) > 0 {
		emotions = strings.Join(pattern.KeyEmotions, ", ")
	}

	return fmt.Sprintf(`TASK: Create a one-week wellness plan for a user with this recent mood pattern.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks.

MOOD PATTERN:
- dominant mood: %s
- average intensity: %.1f (scale 1-10)
- trend: %s
- recurring emotions: %s

EXERCISE TYPES (ONLY these): breathing, journaling, mindfulness, behavioral, cognitive, physical
DIFFICULTY (ONLY these): easy, medium, hard
DURATION: minutes, between 5 and 30

REQUIRED JSON STRUCTURE:
{
  "title": "<plan title>",
  "description": "<2-3 sentence overview>",
  "target_area": "<main focus, e.g. stress reduction>",
  "insights": ["<2-4 observations about the pattern>"],
  "exercises": [
    {
      "title": "<exercise title>",
      "description": "<what to do>",
      "type": "<exercise type>",
      "duration_minutes": <integer>,
      "difficulty": "<difficulty>",
      "day_of_week": <integer 0-6, 0 is Monday>
    }
  ]
}

Include between 3 and 6 exercises spread across the week.`,
		pattern.DominantMood, pattern.AverageIntensity, pattern.Trend, emotions)
}
