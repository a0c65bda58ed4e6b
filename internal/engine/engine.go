// Package engine is the mood orchestrator: it owns the classification
// queue, the daily rollup, trend computation, and weekly plan
// generation. Content writes stay fast because classification runs on a
// worker pool behind a bounded queue; the rollup is recomputed after
// every completed classification so the daily summary is always
// consistent with the analyses on record.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// classifyJob is one unit of queued classification work.
type classifyJob struct {
	UserID   string
	Source   types.SourceKind
	SourceID string
	Text     string
	Attempt  int
}

// Engine coordinates classification, rollups, trends and plans on top of
// a storage.Store and an ai.Gateway.
type Engine struct {
	config  Config
	store   storage.Store
	gateway ai.Gateway

	// embedder is optional; nil disables related-entry lookup.
	embedder ai.EmbeddingGenerator
	// similarity is non-nil only when the store supports vector search.
	similarity storage.SimilarityProvider

	classifyQueue   chan *classifyJob
	workerWaitGroup sync.WaitGroup
	workerCtx       context.Context
	workerCancel    context.CancelFunc

	started      bool
	shuttingDown bool
	mu           sync.RWMutex

	// onSummaryUpdated fires after a daily rollup write, for WebSocket
	// broadcast.
	onSummaryUpdated func(userID, date string)
}

// New creates an engine. The embedder may be nil; vector search is
// enabled only when both an embedder is given and the store implements
// storage.SimilarityProvider.
func New(store storage.Store, gateway ai.Gateway, embedder ai.EmbeddingGenerator, config Config) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("ai gateway is required")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:        config,
		store:         store,
		gateway:       gateway,
		embedder:      embedder,
		classifyQueue: make(chan *classifyJob, config.QueueSize),
	}

	if sim, ok := store.(storage.SimilarityProvider); ok && embedder != nil {
		e.similarity = sim
		log.Printf("Vector search enabled (model=%s)", embedder.GetModel())
	}

	return e, nil
}

// SetOnSummaryUpdated sets the callback fired after each rollup write.
func (e *Engine) SetOnSummaryUpdated(callback func(userID, date string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSummaryUpdated = callback
}

// Start launches the worker pool. Must be called before Enqueue.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return fmt.Errorf("engine already started")
	}

	e.workerCtx, e.workerCancel = context.WithCancel(ctx)
	for i := 0; i < e.config.NumWorkers; i++ {
		e.workerWaitGroup.Add(1)
		go e.classifyWorker(e.workerCtx, i)
	}
	log.Printf("Started %d classification workers", e.config.NumWorkers)

	e.started = true
	return nil
}

// Shutdown closes the queue and waits for workers to drain remaining
// jobs, bounded by ShutdownTimeout.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return fmt.Errorf("engine not started")
	}

	e.shuttingDown = true
	close(e.classifyQueue)

	done := make(chan struct{})
	go func() {
		e.workerWaitGroup.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
		log.Println("All classification workers finished")
	case <-time.After(e.config.ShutdownTimeout):
		log.Printf("WARNING: shutdown timeout reached, %d classification jobs dropped", len(e.classifyQueue))
	case <-ctx.Done():
		log.Printf("WARNING: shutdown cancelled, %d classification jobs dropped", len(e.classifyQueue))
		err = ctx.Err()
	}

	if e.workerCancel != nil {
		e.workerCancel()
	}
	e.started = false
	e.shuttingDown = false
	return err
}

// Enqueue queues one piece of content for async classification. Returns
// false when the engine is stopped or the queue is full; the content
// itself is already persisted by the caller either way.
func (e *Engine) Enqueue(userID string, source types.SourceKind, sourceID, text string) bool {
	e.mu.RLock()
	canQueue := e.started && !e.shuttingDown
	e.mu.RUnlock()
	if !canQueue || text == "" {
		return false
	}

	job := &classifyJob{UserID: userID, Source: source, SourceID: sourceID, Text: text}
	select {
	case e.classifyQueue <- job:
		return true
	default:
		log.Printf("WARNING: classification queue full, dropping job for %s/%s", source, sourceID)
		return false
	}
}

// QueueDepth reports the number of classification jobs waiting.
func (e *Engine) QueueDepth() int {
	return len(e.classifyQueue)
}

// Classify runs one classification synchronously: gateway call, analysis
// insert, daily rollup. The gateway never returns a nil classification,
// so the analysis row is written even when the model call failed; a
// failed call only lowers confidence via the fallback values.
func (e *Engine) Classify(ctx context.Context, userID string, source types.SourceKind, sourceID, text string) (*types.MoodAnalysis, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, storage.ErrInvalidInput
	}

	result, err := e.gateway.Classify(ctx, text, source)
	if err != nil {
		log.Printf("Classification degraded for %s/%s: %v", source, sourceID, err)
	}

	analysis := newAnalysis(&classifyJob{UserID: userID, Source: source, SourceID: sourceID, Text: text}, result)
	if err := e.store.CreateAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	if _, err := e.RecomputeDaily(ctx, userID, analysis.Day()); err != nil {
		return analysis, fmt.Errorf("recompute daily summary: %w", err)
	}
	return analysis, nil
}

// RelatedEntries returns journal entries similar to the given one, or an
// empty slice when vector search is not configured.
func (e *Engine) RelatedEntries(ctx context.Context, userID, entryID string, limit int) ([]*storage.SimilarEntry, error) {
	if e.similarity == nil {
		return []*storage.SimilarEntry{}, nil
	}
	return e.similarity.SimilarJournalEntries(ctx, userID, entryID, limit)
}
