// Package sqlite implements the persistence gateway on a local SQLite
// database. This is the default engine: zero external services, suitable
// for single-host deployments and development.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database and applies the schema.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open
	// connection serialises writes and avoids SQLITE_BUSY under load;
	// WAL mode lets readers proceed without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s failed: %w", pragma, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
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
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create conversation: %w", err)
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
		FROM conversations WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get conversation: %w", err)
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
		FROM conversations WHERE user_id = ?
		ORDER BY updated_at DESC LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.Conversation
	for rows.Next() {
		var c types.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan conversation: %w", err)
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
		UPDATE conversations SET title = ? WHERE id = ? AND user_id = ?`,
		title, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: update conversation title: %w", err)
	}
	return requireRow(res)
}

// DeleteConversation implements storage.Store. Messages cascade via the
// foreign key.
func (s *Store) DeleteConversation(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM conversations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: delete conversation: %w", err)
	}
	return requireRow(res)
}

// CreateMessage implements storage.Store and bumps the conversation's
// updated_at so list order tracks activity.
func (s *Store) CreateMessage(ctx context.Context, m *types.Message) error {
	if err := storage.RequireUser(m.UserID); err != nil {
		return err
	}
	if _, err := s.GetConversation(ctx, m.UserID, m.ConversationID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, user_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.UserID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create message: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = ? WHERE id = ?`,
		m.CreatedAt, m.ConversationID)
	if err != nil {
		return fmt.Errorf("sqlite: touch conversation: %w", err)
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
		FROM messages WHERE conversation_id = ? ORDER BY created_at ASC`,
		conversationID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.Message
	for rows.Next() {
		var m types.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan message: %w", err)
		}
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
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Content, string(e.MoodTag), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create journal entry: %w", err)
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
		FROM journal_entries WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &moodTag, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get journal entry: %w", err)
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
		FROM journal_entries WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.JournalEntry
	for rows.Next() {
		var e types.JournalEntry
		var moodTag string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &moodTag, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan journal entry: %w", err)
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
		UPDATE journal_entries SET title = ?, content = ?, mood_tag = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Title, e.Content, string(e.MoodTag), e.UpdatedAt, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("sqlite: update journal entry: %w", err)
	}
	return requireRow(res)
}

// DeleteJournalEntry implements storage.Store.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM journal_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: delete journal entry: %w", err)
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
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Date, c.MoodRating, c.Note, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create check-in: %w", err)
	}
	return nil
}

// ListCheckIns implements storage.Store, inclusive date range. Empty
// bounds mean unbounded.
func (s *Store) ListCheckIns(ctx context.Context, userID, fromDate, toDate string) ([]*types.DailyCheckIn, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, date, mood_rating, note, created_at FROM check_ins WHERE user_id = ?`
	args := []interface{}{userID}
	if fromDate != "" {
		query += " AND date >= ?"
		args = append(args, fromDate)
	}
	if toDate != "" {
		query += " AND date <= ?"
		args = append(args, toDate)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list check-ins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.DailyCheckIn
	for rows.Next() {
		var c types.DailyCheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date, &c.MoodRating, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan check-in: %w", err)
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
		return fmt.Errorf("sqlite: marshal emotions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mood_analyses
			(id, user_id, source, source_id, primary_mood, secondary_mood,
			 intensity, confidence, reasoning, key_emotions, analyzed_text, day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, string(a.Source), a.SourceID, string(a.PrimaryMood), string(a.SecondaryMood),
		a.Intensity, a.Confidence, a.Reasoning, string(emotions), a.AnalyzedText, a.Day(), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create analysis: %w", err)
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
		FROM mood_analyses WHERE user_id = ? AND day = ?
		ORDER BY created_at ASC`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.MoodAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnalysis(rows *sql.Rows) (*types.MoodAnalysis, error) {
	var a types.MoodAnalysis
	var source, primary, secondary, emotionsJSON string
	if err := rows.Scan(&a.ID, &a.UserID, &source, &a.SourceID, &primary, &secondary,
		&a.Intensity, &a.Confidence, &a.Reasoning, &emotionsJSON, &a.AnalyzedText, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: scan analysis: %w", err)
	}
	a.Source = types.SourceKind(source)
	a.PrimaryMood = types.Mood(primary)
	a.SecondaryMood = types.Mood(secondary)
	if err := json.Unmarshal([]byte(emotionsJSON), &a.KeyEmotions); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal emotions: %w", err)
	}
	return &a, nil
}

// UpsertDailySummary implements storage.Store: one row per (user, date).
func (s *Store) UpsertDailySummary(ctx context.Context, sum *types.DailySummary) error {
	if err := storage.RequireUser(sum.UserID); err != nil {
		return err
	}
	emotions, err := json.Marshal(sum.KeyEmotions)
	if err != nil {
		return fmt.Errorf("sqlite: marshal emotions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_summaries
			(id, user_id, date, primary_mood, secondary_mood, average_intensity,
			 overall_confidence, reasoning, key_emotions, analysis_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			primary_mood = excluded.primary_mood,
			secondary_mood = excluded.secondary_mood,
			average_intensity = excluded.average_intensity,
			overall_confidence = excluded.overall_confidence,
			reasoning = excluded.reasoning,
			key_emotions = excluded.key_emotions,
			analysis_count = excluded.analysis_count,
			updated_at = excluded.updated_at`,
		sum.ID, sum.UserID, sum.Date, string(sum.PrimaryMood), string(sum.SecondaryMood),
		sum.AverageIntensity, sum.OverallConfidence, sum.Reasoning, string(emotions),
		sum.AnalysisCount, sum.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: upsert daily summary: %w", err)
	}
	return nil
}

// GetDailySummary implements storage.Store.
func (s *Store) GetDailySummary(ctx context.Context, userID, date string) (*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, primary_mood, secondary_mood, average_intensity,
		       overall_confidence, reasoning, key_emotions, analysis_count, updated_at
		FROM daily_summaries WHERE user_id = ? AND date = ?`, userID, date)
	return scanSummaryRow(row)
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
		FROM daily_summaries WHERE user_id = ?
		ORDER BY date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list daily summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.DailySummary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummaryInto(sc rowScanner) (*types.DailySummary, error) {
	var sum types.DailySummary
	var primary, secondary, emotionsJSON string
	err := sc.Scan(&sum.ID, &sum.UserID, &sum.Date, &primary, &secondary,
		&sum.AverageIntensity, &sum.OverallConfidence, &sum.Reasoning,
		&emotionsJSON, &sum.AnalysisCount, &sum.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan daily summary: %w", err)
	}
	sum.PrimaryMood = types.Mood(primary)
	sum.SecondaryMood = types.Mood(secondary)
	if err := json.Unmarshal([]byte(emotionsJSON), &sum.KeyEmotions); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal emotions: %w", err)
	}
	return &sum, nil
}

func scanSummaryRow(row *sql.Row) (*types.DailySummary, error) { return scanSummaryInto(row) }

func scanSummary(rows *sql.Rows) (*types.DailySummary, error) { return scanSummaryInto(rows) }

// CreatePlan implements storage.Store, inserting the plan and its
// exercises.
func (s *Store) CreatePlan(ctx context.Context, p *types.WeeklyPlan) error {
	if err := storage.RequireUser(p.UserID); err != nil {
		return err
	}
	insights, err := json.Marshal(p.Insights)
	if err != nil {
		return fmt.Errorf("sqlite: marshal insights: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin plan insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO weekly_plans (id, user_id, title, description, target_area, insights, week_start, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.Description, p.TargetArea, string(insights), p.WeekStart, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: create plan: %w", err)
	}

	for _, ex := range p.Exercises {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO plan_exercises
				(id, plan_id, user_id, title, description, type, duration_minutes, difficulty, day_of_week, completed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ex.ID, p.ID, p.UserID, ex.Title, ex.Description, string(ex.Type),
			ex.DurationMinutes, string(ex.Difficulty), ex.DayOfWeek, ex.Completed)
		if err != nil {
			return fmt.Errorf("sqlite: create plan exercise: %w", err)
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
		FROM weekly_plans WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.TargetArea, &insightsJSON, &p.WeekStart, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get plan: %w", err)
	}
	if err := json.Unmarshal([]byte(insightsJSON), &p.Insights); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal insights: %w", err)
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
		FROM weekly_plans WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*types.WeeklyPlan
	for rows.Next() {
		var p types.WeeklyPlan
		var insightsJSON string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.TargetArea, &insightsJSON, &p.WeekStart, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(insightsJSON), &p.Insights); err != nil {
			return nil, fmt.Errorf("sqlite: unmarshal insights: %w", err)
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
		FROM plan_exercises WHERE plan_id = ? ORDER BY day_of_week ASC, id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("sqlite: load exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ex types.PlanExercise
		var exType, difficulty string
		if err := rows.Scan(&ex.ID, &ex.PlanID, &ex.Title, &ex.Description, &exType,
			&ex.DurationMinutes, &difficulty, &ex.DayOfWeek, &ex.Completed); err != nil {
			return fmt.Errorf("sqlite: scan exercise: %w", err)
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
		UPDATE plan_exercises SET completed = ? WHERE id = ? AND user_id = ?`,
		completed, exerciseID, userID)
	if err != nil {
		return fmt.Errorf("sqlite: set exercise completed: %w", err)
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

// Compile-time assertion.
var _ storage.Store = (*Store)(nil)
