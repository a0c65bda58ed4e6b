// Package storage provides the persistence gateway for Solace. The
// interface is composed of per-entity CRUD operations, every one of them
// scoped to an authenticated user identity; an operation without an
// identity fails with ErrNoIdentity before touching the backend.
//
// Three drivers implement the gateway: a local SQLite engine, a direct
// Postgres connection (the hosted database behind Supabase), and the
// Supabase PostgREST API. A fourth in-memory driver backs tests.
package storage

import (
	"context"

	"github.com/solacehq/solace/pkg/types"
)

// Store is the full persistence surface consumed by the rest of the
// service. All writes are single-row inserts or upserts; no multi-row
// atomicity is provided or required. Daily summaries are the only
// entity with upsert semantics, keyed by (user, date).
type Store interface {
	// Conversations.
	CreateConversation(ctx context.Context, c *types.Conversation) error
	GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error)
	ListConversations(ctx context.Context, userID string, opts ListOptions) ([]*types.Conversation, error)
	UpdateConversationTitle(ctx context.Context, userID, id, title string) error
	// DeleteConversation removes the conversation and all its messages.
	DeleteConversation(ctx context.Context, userID, id string) error

	// Messages are append-only within a conversation.
	CreateMessage(ctx context.Context, m *types.Message) error
	ListMessages(ctx context.Context, userID, conversationID string) ([]*types.Message, error)

	// Journal entries.
	CreateJournalEntry(ctx context.Context, e *types.JournalEntry) error
	GetJournalEntry(ctx context.Context, userID, id string) (*types.JournalEntry, error)
	ListJournalEntries(ctx context.Context, userID string, opts ListOptions) ([]*types.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, e *types.JournalEntry) error
	// DeleteJournalEntry removes the entry; mood analyses derived from it
	// are kept (the rollup is historical, not a live join).
	DeleteJournalEntry(ctx context.Context, userID, id string) error

	// Daily check-ins.
	CreateCheckIn(ctx context.Context, c *types.DailyCheckIn) error
	ListCheckIns(ctx context.Context, userID, fromDate, toDate string) ([]*types.DailyCheckIn, error)

	// Mood analyses are immutable: created exactly once per successful
	// classification, never updated or deleted by the orchestrator.
	CreateAnalysis(ctx context.Context, a *types.MoodAnalysis) error
	ListAnalysesByDay(ctx context.Context, userID, date string) ([]*types.MoodAnalysis, error)

	// Daily summaries. UpsertDailySummary overwrites any existing row for
	// (user, date); recomputation never appends duplicates.
	UpsertDailySummary(ctx context.Context, s *types.DailySummary) error
	// GetDailySummary returns ErrNotFound when no rollup exists yet.
	GetDailySummary(ctx context.Context, userID, date string) (*types.DailySummary, error)
	// ListDailySummaries returns up to limit summaries, newest date first.
	ListDailySummaries(ctx context.Context, userID string, limit int) ([]*types.DailySummary, error)

	// Weekly plans. CreatePlan persists the plan and its exercises.
	CreatePlan(ctx context.Context, p *types.WeeklyPlan) error
	GetPlan(ctx context.Context, userID, id string) (*types.WeeklyPlan, error)
	ListPlans(ctx context.Context, userID string, opts ListOptions) ([]*types.WeeklyPlan, error)
	SetExerciseCompleted(ctx context.Context, userID, exerciseID string, completed bool) error

	// Close releases any resources held by the store.
	Close() error
}

// SimilarityProvider is the optional vector-search surface for related
// journal entries. Only the postgres driver implements it; callers probe
// with a type assertion and treat absence as "no related entries".
type SimilarityProvider interface {
	// StoreJournalEmbedding records the embedding for a journal entry,
	// overwriting any previous vector.
	StoreJournalEmbedding(ctx context.Context, userID, entryID, model string, embedding []float32) error

	// SimilarJournalEntries returns up to limit entries closest to the
	// given entry's embedding, excluding the entry itself. An entry with
	// no stored embedding yields an empty slice, not an error.
	SimilarJournalEntries(ctx context.Context, userID, entryID string, limit int) ([]*SimilarEntry, error)
}

// SimilarEntry is one vector-search result: a journal entry and its
// cosine similarity to the probe entry, in [0, 1] for normalized
// embeddings.
type SimilarEntry struct {
	EntryID    string  `json:"entry_id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}
