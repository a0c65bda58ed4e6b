// Package memory provides an in-memory Store driver. It backs unit tests
// and the "memory" storage engine for ephemeral development runs; nothing
// survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// Store implements storage.Store with mutex-guarded maps.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*types.Conversation
	messages      map[string][]*types.Message // keyed by conversation ID
	journal       map[string]*types.JournalEntry
	checkIns      map[string]*types.DailyCheckIn
	analyses      map[string]*types.MoodAnalysis
	summaries     map[string]*types.DailySummary // keyed by userID+"/"+date
	plans         map[string]*types.WeeklyPlan
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string]*types.Conversation),
		messages:      make(map[string][]*types.Message),
		journal:       make(map[string]*types.JournalEntry),
		checkIns:      make(map[string]*types.DailyCheckIn),
		analyses:      make(map[string]*types.MoodAnalysis),
		summaries:     make(map[string]*types.DailySummary),
		plans:         make(map[string]*types.WeeklyPlan),
	}
}

func summaryKey(userID, date string) string { return userID + "/" + date }

// CreateConversation implements storage.Store.
func (s *Store) CreateConversation(ctx context.Context, c *types.Conversation) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.conversations[c.ID] = &cp
	return nil
}

// GetConversation implements storage.Store.
func (s *Store) GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[id]
	if !ok || c.UserID != userID {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ListConversations implements storage.Store. Newest first.
func (s *Store) ListConversations(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.Conversation, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return paginate(out, opts), nil
}

// UpdateConversationTitle implements storage.Store.
func (s *Store) UpdateConversationTitle(ctx context.Context, userID, id, title string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[id]
	if !ok || c.UserID != userID {
		return storage.ErrNotFound
	}
	c.Title = title
	return nil
}

// DeleteConversation implements storage.Store, cascading to messages.
func (s *Store) DeleteConversation(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[id]
	if !ok || c.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.conversations, id)
	delete(s.messages, id)
	return nil
}

// CreateMessage implements storage.Store.
func (s *Store) CreateMessage(ctx context.Context, m *types.Message) error {
	if err := storage.RequireUser(m.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[m.ConversationID]
	if !ok || c.UserID != m.UserID {
		return storage.ErrNotFound
	}
	cp := *m
	s.messages[m.ConversationID] = append(s.messages[m.ConversationID], &cp)
	c.UpdatedAt = m.CreatedAt
	return nil
}

// ListMessages implements storage.Store. Creation order.
func (s *Store) ListMessages(ctx context.Context, userID, conversationID string) ([]*types.Message, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[conversationID]
	if !ok || c.UserID != userID {
		return nil, storage.ErrNotFound
	}
	msgs := s.messages[conversationID]
	out := make([]*types.Message, len(msgs))
	for i, m := range msgs {
		cp := *m
		out[i] = &cp
	}
	return out, nil
}

// CreateJournalEntry implements storage.Store.
func (s *Store) CreateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if err := storage.RequireUser(e.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *e
	s.journal[e.ID] = &cp
	return nil
}

// GetJournalEntry implements storage.Store.
func (s *Store) GetJournalEntry(ctx context.Context, userID, id string) (*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.journal[id]
	if !ok || e.UserID != userID {
		return nil, storage.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// ListJournalEntries implements storage.Store. Newest first.
func (s *Store) ListJournalEntries(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.JournalEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.JournalEntry
	for _, e := range s.journal {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, opts), nil
}

// UpdateJournalEntry implements storage.Store.
func (s *Store) UpdateJournalEntry(ctx context.Context, e *types.JournalEntry) error {
	if err := storage.RequireUser(e.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.journal[e.ID]
	if !ok || old.UserID != e.UserID {
		return storage.ErrNotFound
	}
	cp := *e
	s.journal[e.ID] = &cp
	return nil
}

// DeleteJournalEntry implements storage.Store.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.journal[id]
	if !ok || e.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.journal, id)
	return nil
}

// CreateCheckIn implements storage.Store.
func (s *Store) CreateCheckIn(ctx context.Context, c *types.DailyCheckIn) error {
	if err := storage.RequireUser(c.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.checkIns[c.ID] = &cp
	return nil
}

// ListCheckIns implements storage.Store, inclusive date range.
func (s *Store) ListCheckIns(ctx context.Context, userID, fromDate, toDate string) ([]*types.DailyCheckIn, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.DailyCheckIn
	for _, c := range s.checkIns {
		if c.UserID != userID {
			continue
		}
		if (fromDate != "" && c.Date < fromDate) || (toDate != "" && c.Date > toDate) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// CreateAnalysis implements storage.Store.
func (s *Store) CreateAnalysis(ctx context.Context, a *types.MoodAnalysis) error {
	if err := storage.RequireUser(a.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *a
	cp.KeyEmotions = append([]string(nil), a.KeyEmotions...)
	s.analyses[a.ID] = &cp
	return nil
}

// ListAnalysesByDay implements storage.Store. Creation order.
func (s *Store) ListAnalysesByDay(ctx context.Context, userID, date string) ([]*types.MoodAnalysis, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.MoodAnalysis
	for _, a := range s.analyses {
		if a.UserID == userID && a.Day() == date {
			cp := *a
			cp.KeyEmotions = append([]string(nil), a.KeyEmotions...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpsertDailySummary implements storage.Store: overwrite by (user, date).
func (s *Store) UpsertDailySummary(ctx context.Context, sum *types.DailySummary) error {
	if err := storage.RequireUser(sum.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sum
	cp.KeyEmotions = append([]string(nil), sum.KeyEmotions...)
	s.summaries[summaryKey(sum.UserID, sum.Date)] = &cp
	return nil
}

// GetDailySummary implements storage.Store.
func (s *Store) GetDailySummary(ctx context.Context, userID, date string) (*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, ok := s.summaries[summaryKey(userID, date)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *sum
	cp.KeyEmotions = append([]string(nil), sum.KeyEmotions...)
	return &cp, nil
}

// ListDailySummaries implements storage.Store. Newest date first.
func (s *Store) ListDailySummaries(ctx context.Context, userID string, limit int) ([]*types.DailySummary, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.DailySummary
	for _, sum := range s.summaries {
		if sum.UserID == userID {
			cp := *sum
			cp.KeyEmotions = append([]string(nil), sum.KeyEmotions...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CreatePlan implements storage.Store.
func (s *Store) CreatePlan(ctx context.Context, p *types.WeeklyPlan) error {
	if err := storage.RequireUser(p.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	cp.Insights = append([]string(nil), p.Insights...)
	cp.Exercises = append([]types.PlanExercise(nil), p.Exercises...)
	s.plans[p.ID] = &cp
	return nil
}

// GetPlan implements storage.Store.
func (s *Store) GetPlan(ctx context.Context, userID, id string) (*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok || p.UserID != userID {
		return nil, storage.ErrNotFound
	}
	cp := *p
	cp.Insights = append([]string(nil), p.Insights...)
	cp.Exercises = append([]types.PlanExercise(nil), p.Exercises...)
	return &cp, nil
}

// ListPlans implements storage.Store. Newest first.
func (s *Store) ListPlans(ctx context.Context, userID string, opts storage.ListOptions) ([]*types.WeeklyPlan, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.WeeklyPlan
	for _, p := range s.plans {
		if p.UserID == userID {
			cp := *p
			cp.Insights = append([]string(nil), p.Insights...)
			cp.Exercises = append([]types.PlanExercise(nil), p.Exercises...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, opts), nil
}

// SetExerciseCompleted implements storage.Store.
func (s *Store) SetExerciseCompleted(ctx context.Context, userID, exerciseID string, completed bool) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.plans {
		if p.UserID != userID {
			continue
		}
		for i := range p.Exercises {
			if p.Exercises[i].ID == exerciseID {
				p.Exercises[i].Completed = completed
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return nil
}

func paginate[T any](items []*T, opts storage.ListOptions) []*T {
	if opts.Offset >= len(items) {
		return nil
	}
	items = items[opts.Offset:]
	if len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items
}

// Compile-time assertion.
var _ storage.Store = (*Store)(nil)
