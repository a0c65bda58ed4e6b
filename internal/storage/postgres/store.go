// Package postgres implements the persistence gateway on a Postgres
// database, typically the hosted database behind a Supabase project
// reached over its direct connection string. It is the only driver with
// vector similarity support for related journal entries (pgvector).
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Store implements storage.Store using Postgres.
type Store struct {
	db *sql.DB
}

// NewStore connects to Postgres and applies the schema.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// GetDB exposes the underlying connection for the stats handler.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateConversation implements storage.Store.
func (s *Store) CreateConversation(ctx context.Context, c *types.Conversation) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create conversation: %w", err)
	}
	return nil
}

// GetConversation implements storage.Store.
func (s *Store) GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var c types.Conversation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get conversation: %w", err)
	}
	return &c, nil
}

// ListConversations implements storage.Store. Newest activity first.
func (s *Store) ListConversations(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations WHERE user_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.Conversation
	for rows.Next() {
		var c types.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan conversation: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// UpdateConversationTitle implements storage.Store.
func (s *Store) UpdateConversationTitle(ctx context.Context, userID, id, title string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE conversations SET title = $1 WHERE id = $2 AND user_id = $3`,
		title, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: update conversation title: %w", err)
	}
	return requireRow(res)
}

// DeleteConversation implements storage.Store. Messages cascade.
func (s *Store) DeleteConversation(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM conversations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: delete conversation: %w", err)
	}
	return requireRow(res)
}

// CreateMessage implements storage.Store.
func (s *Store) CreateMessage(ctx context.Context, m *types.Message) error {
	if err := storage.RequireUser(m.UserID); err != nil {
		return err
	}
	if _, err := s.GetConversation(ctx, m.UserID, m.ConversationID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ConversationID, m.UserID, string(m.Role), m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create message: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = $1 WHERE id = $2`,
		m.CreatedAt, m.ConversationID)
	if err != nil {
		return fmt.Errorf("postgres: touch conversation: %w", err)
	}
	return nil
}

// ListMessages implements storage.Store. Creation order.
func (s *Store) ListMessages(ctx context.Context, userID, conversationID string) ([]*types.Message, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if _, err := s.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_id, role, content, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`,
		conversationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.Message
	for rows.Next() {
		var m types.Message
		var role string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan message: %w", err)
		}
		m.Role = types.ChatRole(role)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// CreateJournalEntry implements storage.Store.
func (s *Store) CreateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if err := storage.RequireUser(e.UserID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, title, content, mood_tag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Title, e.Content, string(e.MoodTag), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create journal entry: %w", err)
	}
	return nil
}

// GetJournalEntry implements storage.Store.
func (s *Store) GetJournalEntry(ctx context.Context, userID, id string) (*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var e types.JournalEntry
	var moodTag string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, mood_tag, created_at, updated_at
		FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &moodTag, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get journal entry: %w", err)
	}
	e.MoodTag = types.Mood(moodTag)
	return &e, nil
}

// ListJournalEntries implements storage.Store. Newest first.
func (s *Store) ListJournalEntries(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, mood_tag, created_at, updated_at
		FROM journal_entries WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectJournalEntries(rows)
}

func collectJournalEntries(rows *sql.Rows) ([]*types.JournalEntry, error) {
	var out []*types.JournalEntry
	for rows.Next() {
		var e types.JournalEntry
		var moodTag string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &moodTag, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan journal entry: %w", err)
		}
		e.MoodTag = types.Mood(moodTag)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// UpdateJournalEntry implements storage.Store.
func (s *Store) UpdateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if err := storage.RequireUser(e.UserID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries SET title = $1, content = $2, mood_tag = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`,
		e.Title, e.Content, string(e.MoodTag), e.UpdatedAt, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("postgres: update journal entry: %w", err)
	}
	return requireRow(res)
}

// DeleteJournalEntry implements storage.Store. The entry's embedding
// cascades.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: delete journal entry: %w", err)
	}
	return requireRow(res)
}

// CreateCheckIn implements storage.Store.
func (s *Store) CreateCheckIn(ctx context.Context, c *types.DailyCheckIn) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO check_ins (id, user_id, date, mood_rating, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.Date, c.MoodRating, c.Note, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create check-in: %w", err)
	}
	return nil
}

// ListCheckIns implements storage.Store, inclusive date range.
func (s *Store) ListCheckIns(ctx context.Context, userID, fromDate, toDate string) ([]*types.DailyCheckIn, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, date, mood_rating, note, created_at FROM check_ins WHERE user_id = $1`
	args := []interface{}{userID}
	if fromDate != "" {
		args = append(args, fromDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list check-ins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.DailyCheckIn
	for rows.Next() {
		var c types.DailyCheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date, &c.MoodRating, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan check-in: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CreateAnalysis implements storage.Store.
func (s *Store) CreateAnalysis(ctx context.Context, a *types.MoodAnalysis) error {
	if err := storage.RequireUser(a.UserID); err != nil {
		return err
	}
	emotions, err := json.Marshal(a.KeyEmotions)
	if err != nil {
		return fmt.Errorf("postgres: marshal emotions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mood_analyses
			(id, user_id, source, source_id, primary_mood, secondary_mood,
			 intensity, confidence, reasoning, key_emotions, analyzed_text, day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.UserID, string(a.Source), a.SourceID, string(a.PrimaryMood), string(a.SecondaryMood),
		a.Intensity, a.Confidence, a.Reasoning, string(emotions), a.AnalyzedText, a.Day(), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create analysis: %w", err)
	}
	return nil
}

// ListAnalysesByDay implements storage.Store. Creation order.
func (s *Store) ListAnalysesByDay(ctx context.Context, userID, date string) ([]*types.MoodAnalysis, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, source, source_id, primary_mood, secondary_mood,
		       intensity, confidence, reasoning, key_emotions, analyzed_text, created_at
		FROM mood_analyses WHERE user_id = $1 AND day = $2
		ORDER BY created_at ASC`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("postgres: list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.MoodAnalysis
	for rows.Next() {
		var a types.MoodAnalysis
		var source, primary, secondary, emotionsJSON string
		if err := rows.Scan(&a.ID, &a.UserID, &source, &a.SourceID, &primary, &secondary,
			&a.Intensity, &a.Confidence, &a.Reasoning, &emotionsJSON, &a.AnalyzedText, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan analysis: %w", err)
		}
		a.Source = types.SourceKind(source)
		a.PrimaryMood = types.Mood(primary)
		a.SecondaryMood = types.Mood(secondary)
		if err := json.Unmarshal([]byte(emotionsJSON), &a.KeyEmotions); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal emotions: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// UpsertDailySummary implements storage.Store: one row per (user, date).
func (s *Store) UpsertDailySummary(ctx context.Context, sum *types.DailySummary) error {
	if err := storage.RequireUser(sum.UserID); err != nil {
		return err
	}
	emotions, err := json.Marshal(sum.KeyEmotions)
	if err != nil {
		return fmt.Errorf("postgres: marshal emotions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_summaries
			(id, user_id, date, primary_mood, secondary_mood, average_intensity,
			 overall_confidence, reasoning, key_emotions, analysis_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, date) DO UPDATE SET
			primary_mood = EXCLUDED.primary_mood,
			secondary_mood = EXCLUDED.secondary_mood,
			average_intensity = EXCLUDED.average_intensity,
			overall_confidence = EXCLUDED.overall_confidence,
			reasoning = EXCLUDED.reasoning,
			key_emotions = EXCLUDED.key_emotions,
			analysis_count = EXCLUDED.analysis_count,
			updated_at = EXCLUDED.updated_at`,
		sum.ID, sum.UserID, sum.Date, string(sum.PrimaryMood), string(sum.SecondaryMood),
		sum.AverageIntensity, sum.OverallConfidence, sum.Reasoning, string(emotions),
		sum.AnalysisCount, sum.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: upsert daily summary: %w", err)
	}
	return nil
}

// GetDailySummary implements storage.Store.
func (s *Store) GetDailySummary(ctx context.Context, userID, date string) (*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var sum types.DailySummary
	var primary, secondary, emotionsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, primary_mood, secondary_mood, average_intensity,
		       overall_confidence, reasoning, key_emotions, analysis_count, updated_at
		FROM daily_summaries WHERE user_id = $1 AND date = $2`, userID, date).
		Scan(&sum.ID, &sum.UserID, &sum.Date, &primary, &secondary,
			&sum.AverageIntensity, &sum.OverallConfidence, &sum.Reasoning,
			&emotionsJSON, &sum.AnalysisCount, &sum.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get daily summary: %w", err)
	}
	sum.PrimaryMood = types.Mood(primary)
	sum.SecondaryMood = types.Mood(secondary)
	if err := json.Unmarshal([]byte(emotionsJSON), &sum.KeyEmotions); err != nil {
		return nil, fmt.Errorf("postgres: unmarshal emotions: %w", err)
	}
	return &sum, nil
}

// ListDailySummaries implements storage.Store. Newest date first.
func (s *Store) ListDailySummaries(ctx context.Context, userID string, limit int) ([]*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, primary_mood, secondary_mood, average_intensity,
		       overall_confidence, reasoning, key_emotions, analysis_count, updated_at
		FROM daily_summaries WHERE user_id = $1
		ORDER BY date DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list daily summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.DailySummary
	for rows.Next() {
		var sum types.DailySummary
		var primary, secondary, emotionsJSON string
		if err := rows.Scan(&sum.ID, &sum.UserID, &sum.Date, &primary, &secondary,
			&sum.AverageIntensity, &sum.OverallConfidence, &sum.Reasoning,
			&emotionsJSON, &sum.AnalysisCount, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan daily summary: %w", err)
		}
		sum.PrimaryMood = types.Mood(primary)
		sum.SecondaryMood = types.Mood(secondary)
		if err := json.Unmarshal([]byte(emotionsJSON), &sum.KeyEmotions); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal emotions: %w", err)
		}
		out = append(out, &sum)
	}
	return out, rows.Err()
}

// CreatePlan implements storage.Store.
func (s *Store) CreatePlan(ctx context.Context, p *types.WeeklyPlan) error {
	if err := storage.RequireUser(p.UserID); err != nil {
		return err
	}
	insights, err := json.Marshal(p.Insights)
	if err != nil {
		return fmt.Errorf("postgres: marshal insights: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin plan insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO weekly_plans (id, user_id, title, description, target_area, insights, week_start, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.Title, p.Description, p.TargetArea, string(insights), p.WeekStart, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: create plan: %w", err)
	}

	for _, ex := range p.Exercises {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO plan_exercises
				(id, plan_id, user_id, title, description, type, duration_minutes, difficulty, day_of_week, completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			ex.ID, p.ID, p.UserID, ex.Title, ex.Description, string(ex.Type),
			ex.DurationMinutes, string(ex.Difficulty), ex.DayOfWeek, ex.Completed)
		if err != nil {
			return fmt.Errorf("postgres: create plan exercise: %w", err)
		}
	}

	return tx.Commit()
}

// GetPlan implements storage.Store.
func (s *Store) GetPlan(ctx context.Context, userID, id string) (*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var p types.WeeklyPlan
	var insightsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, target_area, insights, week_start, created_at
		FROM weekly_plans WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.TargetArea, &insightsJSON, &p.WeekStart, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get plan: %w", err)
	}
	if err := json.Unmarshal([]byte(insightsJSON), &p.Insights); err != nil {
		return nil, fmt.Errorf("postgres: unmarshal insights: %w", err)
	}
	if err := s.loadExercises(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlans implements storage.Store. Newest first.
func (s *Store) ListPlans(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, target_area, insights, week_start, created_at
		FROM weekly_plans WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.WeeklyPlan
	for rows.Next() {
		var p types.WeeklyPlan
		var insightsJSON string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.TargetArea, &insightsJSON, &p.WeekStart, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(insightsJSON), &p.Insights); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal insights: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range out {
		if err := s.loadExercises(ctx, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadExercises(ctx context.Context, p *types.WeeklyPlan) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plan_id, title, description, type, duration_minutes, difficulty, day_of_week, completed
		FROM plan_exercises WHERE plan_id = $1 ORDER BY day_of_week ASC, id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("postgres: load exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ex types.PlanExercise
		var exType, difficulty string
		if err := rows.Scan(&ex.ID, &ex.PlanID, &ex.Title, &ex.Description, &exType,
			&ex.DurationMinutes, &difficulty, &ex.DayOfWeek, &ex.Completed); err != nil {
			return fmt.Errorf("postgres: scan exercise: %w", err)
		}
		ex.Type = types.ExerciseType(exType)
		ex.Difficulty = types.Difficulty(difficulty)
		p.Exercises = append(p.Exercises, ex)
	}
	return rows.Err()
}

// SetExerciseCompleted implements storage.Store.
func (s *Store) SetExerciseCompleted(ctx context.Context, userID, exerciseID string, completed bool) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE plan_exercises SET completed = $1 WHERE id = $2 AND user_id = $3`,
		completed, exerciseID, userID)
	if err != nil {
		return fmt.Errorf("postgres: set exercise completed: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Compile-time assertions.
var (
	_ storage.Store              = (*Store)(nil)
	_ storage.SimilarityProvider = (*Store)(nil)
)
