// Package supabase implements the persistence gateway over the Supabase
// PostgREST API. It assumes the same tables as the direct postgres
// driver, reached through the project's REST endpoint with a service
// role key instead of a database connection string.
//
// PostgREST offers no multi-statement transactions, so plan inserts are
// a sequence of single-row writes; a failure partway leaves a plan
// without its remaining exercises, which the orchestrator treats as a
// failed creation.
package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Store implements storage.Store using the Supabase REST API.
type Store struct {
	client *supabase.Client
}

// NewStore creates a PostgREST-backed store. The schema must already
// exist; unlike the sql drivers this one cannot create tables.
func NewStore(projectURL, apiKey string) (*Store, error) {
	if projectURL == "" {
		return nil, fmt.Errorf("supabase: project URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("supabase: API key is required")
	}

	client, err := supabase.NewClient(projectURL, apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: failed to create client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close implements storage.Store. The REST client holds no connections.
func (s *Store) Close() error {
	return nil
}

func descending() *postgrest.OrderOpts {
	return &postgrest.OrderOpts{Ascending: false}
}

func ascending() *postgrest.OrderOpts {
	return &postgrest.OrderOpts{Ascending: true}
}

// CreateConversation implements storage.Store.
func (s *Store) CreateConversation(ctx context.Context, c *types.Conversation) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	_, _, err := s.client.From("conversations").
		Insert(conversationRow(c), false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create conversation: %w", err)
	}
	return nil
}

// GetConversation implements storage.Store.
func (s *Store) GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var rows []conversationRecord
	_, err := s.client.From("conversations").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: get conversation: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0].toConversation(), nil
}

// ListConversations implements storage.Store. Newest activity first.
func (s *Store) ListConversations(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	var rows []conversationRecord
	_, err := s.client.From("conversations").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("updated_at", descending()).
		Range(opts.Offset, opts.Offset+opts.Limit-1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list conversations: %w", err)
	}

	out := make([]*types.Conversation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toConversation())
	}
	return out, nil
}

// UpdateConversationTitle implements storage.Store.
func (s *Store) UpdateConversationTitle(ctx context.Context, userID, id, title string) error {
	if _, err := s.GetConversation(ctx, userID, id); err != nil {
		return err
	}
	_, _, err := s.client.From("conversations").
		Update(map[string]interface{}{"title": title}, "", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: update conversation title: %w", err)
	}
	return nil
}

// DeleteConversation implements storage.Store. Messages cascade in the
// database.
func (s *Store) DeleteConversation(ctx context.Context, userID, id string) error {
	if _, err := s.GetConversation(ctx, userID, id); err != nil {
		return err
	}
	_, _, err := s.client.From("conversations").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: delete conversation: %w", err)
	}
	return nil
}

// CreateMessage implements storage.Store.
func (s *Store) CreateMessage(ctx context.Context, m *types.Message) error {
	if err := storage.RequireUser(m.UserID); err != nil {
		return err
	}
	if _, err := s.GetConversation(ctx, m.UserID, m.ConversationID); err != nil {
		return err
	}
	_, _, err := s.client.From("messages").
		Insert(messageRow(m), false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create message: %w", err)
	}
	_, _, err = s.client.From("conversations").
		Update(map[string]interface{}{"updated_at": m.CreatedAt}, "", "").
		Eq("id", m.ConversationID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: touch conversation: %w", err)
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

	var rows []messageRecord
	_, err := s.client.From("messages").
		Select("*", "", false).
		Eq("conversation_id", conversationID).
		Order("created_at", ascending()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list messages: %w", err)
	}

	out := make([]*types.Message, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toMessage())
	}
	return out, nil
}

// CreateJournalEntry implements storage.Store.
func (s *Store) CreateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if err := storage.RequireUser(e.UserID); err != nil {
		return err
	}
	_, _, err := s.client.From("journal_entries").
		Insert(journalRow(e), false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create journal entry: %w", err)
	}
	return nil
}

// GetJournalEntry implements storage.Store.
func (s *Store) GetJournalEntry(ctx context.Context, userID, id string) (*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var rows []journalRecord
	_, err := s.client.From("journal_entries").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: get journal entry: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0].toEntry(), nil
}

// ListJournalEntries implements storage.Store. Newest first.
func (s *Store) ListJournalEntries(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	var rows []journalRecord
	_, err := s.client.From("journal_entries").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", descending()).
		Range(opts.Offset, opts.Offset+opts.Limit-1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list journal entries: %w", err)
	}

	out := make([]*types.JournalEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntry())
	}
	return out, nil
}

// UpdateJournalEntry implements storage.Store.
func (s *Store) UpdateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if _, err := s.GetJournalEntry(ctx, e.UserID, e.ID); err != nil {
		return err
	}
	_, _, err := s.client.From("journal_entries").
		Update(map[string]interface{}{
			"title":      e.Title,
			"content":    e.Content,
			"mood_tag":   string(e.MoodTag),
			"updated_at": e.UpdatedAt,
		}, "", "").
		Eq("id", e.ID).
		Eq("user_id", e.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: update journal entry: %w", err)
	}
	return nil
}

// DeleteJournalEntry implements storage.Store.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	if _, err := s.GetJournalEntry(ctx, userID, id); err != nil {
		return err
	}
	_, _, err := s.client.From("journal_entries").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: delete journal entry: %w", err)
	}
	return nil
}

// CreateCheckIn implements storage.Store.
func (s *Store) CreateCheckIn(ctx context.Context, c *types.DailyCheckIn) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	_, _, err := s.client.From("check_ins").
		Insert(checkInRow(c), false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create check-in: %w", err)
	}
	return nil
}

// ListCheckIns implements storage.Store, inclusive date range.
func (s *Store) ListCheckIns(ctx context.Context, userID, fromDate, toDate string) ([]*types.DailyCheckIn, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	q := s.client.From("check_ins").
		Select("*", "", false).
		Eq("user_id", userID)
	if fromDate != "" {
		q = q.Gte("date", fromDate)
	}
	if toDate != "" {
		q = q.Lte("date", toDate)
	}

	var rows []checkInRecord
	_, err := q.Order("date", ascending()).ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list check-ins: %w", err)
	}

	out := make([]*types.DailyCheckIn, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toCheckIn())
	}
	return out, nil
}

// CreateAnalysis implements storage.Store.
func (s *Store) CreateAnalysis(ctx context.Context, a *types.MoodAnalysis) error {
	if err := storage.RequireUser(a.UserID); err != nil {
		return err
	}
	row, err := analysisRow(a)
	if err != nil {
		return err
	}
	_, _, err = s.client.From("mood_analyses").
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create analysis: %w", err)
	}
	return nil
}

// ListAnalysesByDay implements storage.Store. Creation order.
func (s *Store) ListAnalysesByDay(ctx context.Context, userID, date string) ([]*types.MoodAnalysis, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}

	var rows []analysisRecord
	_, err := s.client.From("mood_analyses").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("day", date).
		Order("created_at", ascending()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list analyses: %w", err)
	}

	out := make([]*types.MoodAnalysis, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toAnalysis()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// UpsertDailySummary implements storage.Store, using PostgREST upsert on
// the (user_id, date) unique constraint.
func (s *Store) UpsertDailySummary(ctx context.Context, sum *types.DailySummary) error {
	if err := storage.RequireUser(sum.UserID); err != nil {
		return err
	}
	row, err := summaryRow(sum)
	if err != nil {
		return err
	}
	_, _, err = s.client.From("daily_summaries").
		Insert(row, true, "user_id,date", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: upsert daily summary: %w", err)
	}
	return nil
}

// GetDailySummary implements storage.Store.
func (s *Store) GetDailySummary(ctx context.Context, userID, date string) (*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var rows []summaryRecord
	_, err := s.client.From("daily_summaries").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("date", date).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: get daily summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0].toSummary()
}

// ListDailySummaries implements storage.Store. Newest date first.
func (s *Store) ListDailySummaries(ctx context.Context, userID string, limit int) ([]*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}

	var rows []summaryRecord
	_, err := s.client.From("daily_summaries").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date", descending()).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list daily summaries: %w", err)
	}

	out := make([]*types.DailySummary, 0, len(rows))
	for i := range rows {
		sum, err := rows[i].toSummary()
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// CreatePlan implements storage.Store. The plan row is written first so
// exercise rows never dangle.
func (s *Store) CreatePlan(ctx context.Context, p *types.WeeklyPlan) error {
	if err := storage.RequireUser(p.UserID); err != nil {
		return err
	}
	row, err := planRow(p)
	if err != nil {
		return err
	}
	_, _, err = s.client.From("weekly_plans").
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: create plan: %w", err)
	}

	if len(p.Exercises) > 0 {
		rows := make([]exerciseRecord, 0, len(p.Exercises))
		for i := range p.Exercises {
			rows = append(rows, exerciseRow(p.ID, p.UserID, &p.Exercises[i]))
		}
		_, _, err = s.client.From("plan_exercises").
			Insert(rows, false, "", "", "").
			Execute()
		if err != nil {
			return fmt.Errorf("supabase: create plan exercises: %w", err)
		}
	}
	return nil
}

// GetPlan implements storage.Store.
func (s *Store) GetPlan(ctx context.Context, userID, id string) (*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	var rows []planRecord
	_, err := s.client.From("weekly_plans").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: get plan: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	p, err := rows[0].toPlan()
	if err != nil {
		return nil, err
	}
	if err := s.loadExercises(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans implements storage.Store. Newest first.
func (s *Store) ListPlans(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	var rows []planRecord
	_, err := s.client.From("weekly_plans").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", descending()).
		Range(opts.Offset, opts.Offset+opts.Limit-1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("supabase: list plans: %w", err)
	}

	out := make([]*types.WeeklyPlan, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toPlan()
		if err != nil {
			return nil, err
		}
		if err := s.loadExercises(ctx, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) loadExercises(ctx context.Context, p *types.WeeklyPlan) error {
	var rows []exerciseRecord
	_, err := s.client.From("plan_exercises").
		Select("*", "", false).
		Eq("plan_id", p.ID).
		Order("day_of_week", ascending()).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("supabase: load exercises: %w", err)
	}
	for i := range rows {
		p.Exercises = append(p.Exercises, rows[i].toExercise())
	}
	return nil
}

// SetExerciseCompleted implements storage.Store.
func (s *Store) SetExerciseCompleted(ctx context.Context, userID, exerciseID string, completed bool) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	var rows []exerciseRecord
	_, err := s.client.From("plan_exercises").
		Select("id", "", false).
		Eq("id", exerciseID).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("supabase: find exercise: %w", err)
	}
	if len(rows) == 0 {
		return storage.ErrNotFound
	}

	_, _, err = s.client.From("plan_exercises").
		Update(map[string]interface{}{"completed": completed}, "", "").
		Eq("id", exerciseID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase: set exercise completed: %w", err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
