package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solacehq/solace/pkg/types"
)

// Record types mirror the table columns as PostgREST serializes them.
// List-valued columns (key_emotions, insights) are stored as JSON text
// to stay identical to the sql drivers' layout.

type conversationRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func conversationRow(c *types.Conversation) conversationRecord {
	return conversationRecord{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *conversationRecord) toConversation() *types.Conversation {
	return &types.Conversation{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type messageRecord struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func messageRow(m *types.Message) messageRecord {
	return messageRecord{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *messageRecord) toMessage() *types.Message {
	return &types.Message{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		UserID:         r.UserID,
		Role:           types.ChatRole(r.Role),
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
	}
}

type journalRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MoodTag   string    `json:"mood_tag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func journalRow(e *types.JournalEntry) journalRecord {
	return journalRecord{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		MoodTag:   string(e.MoodTag),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *journalRecord) toEntry() *types.JournalEntry {
	return &types.JournalEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		MoodTag:   types.Mood(r.MoodTag),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type checkInRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	MoodRating int       `json:"mood_rating"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func checkInRow(c *types.DailyCheckIn) checkInRecord {
	return checkInRecord{
		ID:         c.ID,
		UserID:     c.UserID,
		Date:       c.Date,
		MoodRating: c.MoodRating,
		Note:       c.Note,
		CreatedAt:  c.CreatedAt,
	}
}

func (r *checkInRecord) toCheckIn() *types.DailyCheckIn {
	return &types.DailyCheckIn{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date,
		MoodRating: r.MoodRating,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
	}
}

type analysisRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Source        string    `json:"source"`
	SourceID      string    `json:"source_id"`
	PrimaryMood   string    `json:"primary_mood"`
	SecondaryMood string    `json:"secondary_mood"`
	Intensity     int       `json:"intensity"`
	Confidence    float64   `json:"confidence"`
	Reasoning     string    `json:"reasoning"`
	KeyEmotions   string    `json:"key_emotions"`
	AnalyzedText  string    `json:"analyzed_text"`
	Day           string    `json:"day"`
	CreatedAt     time.Time `json:"created_at"`
}

func analysisRow(a *types.MoodAnalysis) (analysisRecord, error) {
	emotions, err := json.Marshal(a.KeyEmotions)
	if err != nil {
		return analysisRecord{}, fmt.Errorf("supabase: marshal emotions: %w", err)
	}
	return analysisRecord{
		ID:            a.ID,
		UserID:        a.UserID,
		Source:        string(a.Source),
		SourceID:      a.SourceID,
		PrimaryMood:   string(a.PrimaryMood),
		SecondaryMood: string(a.SecondaryMood),
		Intensity:     a.Intensity,
		Confidence:    a.Confidence,
		Reasoning:     a.Reasoning,
		KeyEmotions:   string(emotions),
		AnalyzedText:  a.AnalyzedText,
		Day:           a.Day(),
		CreatedAt:     a.CreatedAt,
	}, nil
}

func (r *analysisRecord) toAnalysis() (*types.MoodAnalysis, error) {
	a := &types.MoodAnalysis{
		ID:            r.ID,
		UserID:        r.UserID,
		Source:        types.SourceKind(r.Source),
		SourceID:      r.SourceID,
		PrimaryMood:   types.Mood(r.PrimaryMood),
		SecondaryMood: types.Mood(r.SecondaryMood),
		Intensity:     r.Intensity,
		Confidence:    r.Confidence,
		Reasoning:     r.Reasoning,
		AnalyzedText:  r.AnalyzedText,
		CreatedAt:     r.CreatedAt,
	}
	if err := json.Unmarshal([]byte(r.KeyEmotions), &a.KeyEmotions); err != nil {
		return nil, fmt.Errorf("supabase: unmarshal emotions: %w", err)
	}
	return a, nil
}

type summaryRecord struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Date              string    `json:"date"`
	PrimaryMood       string    `json:"primary_mood"`
	SecondaryMood     string    `json:"secondary_mood"`
	AverageIntensity  float64   `json:"average_intensity"`
	OverallConfidence float64   `json:"overall_confidence"`
	Reasoning         string    `json:"reasoning"`
	KeyEmotions       string    `json:"key_emotions"`
	AnalysisCount     int       `json:"analysis_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func summaryRow(s *types.DailySummary) (summaryRecord, error) {
	emotions, err := json.Marshal(s.KeyEmotions)
	if err != nil {
		return summaryRecord{}, fmt.Errorf("supabase: marshal emotions: %w", err)
	}
	return summaryRecord{
		ID:                s.ID,
		UserID:            s.UserID,
		Date:              s.Date,
		PrimaryMood:       string(s.PrimaryMood),
		SecondaryMood:     string(s.SecondaryMood),
		AverageIntensity:  s.AverageIntensity,
		OverallConfidence: s.OverallConfidence,
		Reasoning:         s.Reasoning,
		KeyEmotions:       string(emotions),
		AnalysisCount:     s.AnalysisCount,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

func (r *summaryRecord) toSummary() (*types.DailySummary, error) {
	s := &types.DailySummary{
		ID:                r.ID,
		UserID:            r.UserID,
		Date:              r.Date,
		PrimaryMood:       types.Mood(r.PrimaryMood),
		SecondaryMood:     types.Mood(r.SecondaryMood),
		AverageIntensity:  r.AverageIntensity,
		OverallConfidence: r.OverallConfidence,
		Reasoning:         r.Reasoning,
		AnalysisCount:     r.AnalysisCount,
		UpdatedAt:         r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.KeyEmotions), &s.KeyEmotions); err != nil {
		return nil, fmt.Errorf("supabase: unmarshal emotions: %w", err)
	}
	return s, nil
}

type planRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetArea  string    `json:"target_area"`
	Insights    string    `json:"insights"`
	WeekStart   string    `json:"week_start"`
	CreatedAt   time.Time `json:"created_at"`
}

func planRow(p *types.WeeklyPlan) (planRecord, error) {
	insights, err := json.Marshal(p.Insights)
	if err != nil {
		return planRecord{}, fmt.Errorf("supabase: marshal insights: %w", err)
	}
	return planRecord{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		TargetArea:  p.TargetArea,
		Insights:    string(insights),
		WeekStart:   p.WeekStart,
		CreatedAt:   p.CreatedAt,
	}, nil
}

func (r *planRecord) toPlan() (*types.WeeklyPlan, error) {
	p := &types.WeeklyPlan{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		TargetArea:  r.TargetArea,
		WeekStart:   r.WeekStart,
		CreatedAt:   r.CreatedAt,
	}
	if err := json.Unmarshal([]byte(r.Insights), &p.Insights); err != nil {
		return nil, fmt.Errorf("supabase: unmarshal insights: %w", err)
	}
	return p, nil
}

type exerciseRecord struct {
	ID              string `json:"id"`
	PlanID          string `json:"plan_id"`
	UserID          string `json:"user_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
	DayOfWeek       int    `json:"day_of_week"`
	Completed       bool   `json:"completed"`
}

func exerciseRow(planID, userID string, ex *types.PlanExercise) exerciseRecord {
	return exerciseRecord{
		ID:              ex.ID,
		PlanID:          planID,
		UserID:          userID,
		Title:           ex.Title,
		Description:     ex.Description,
		Type:            string(ex.Type),
		DurationMinutes: ex.DurationMinutes,
		Difficulty:      string(ex.Difficulty),
		DayOfWeek:       ex.DayOfWeek,
		Completed:       ex.Completed,
	}
}

func (r *exerciseRecord) toExercise() types.PlanExercise {
	return types.PlanExercise{
		ID:              r.ID,
		PlanID:          r.PlanID,
		Title:           r.Title,
		Description:     r.Description,
		Type:            types.ExerciseType(r.Type),
		DurationMinutes: r.DurationMinutes,
		Difficulty:      types.Difficulty(r.Difficulty),
		DayOfWeek:       r.DayOfWeek,
		Completed:       r.Completed,
	}
}
