package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/pkg/types"
)

// classifyWorker drains the classification queue until it is closed.
func (e *Engine) classifyWorker(ctx context.Context, workerID int) {
	defer e.workerWaitGroup.Done()

	log.Printf("Classification worker %d started", workerID)

	for job := range e.classifyQueue {
		e.processClassifyJob(ctx, workerID, job)
	}

	log.Printf("Classification worker %d stopped", workerID)
}

// processClassifyJob handles one queued classification. Persistence uses
// a background context so in-flight database writes survive shutdown
// cancellation; only the model call honors the worker context.
func (e *Engine) processClassifyJob(ctx context.Context, workerID int, job *classifyJob) {
	if job.Attempt > 0 {
		backoff := time.Duration(job.Attempt*job.Attempt) * 100 * time.Millisecond
		time.Sleep(backoff)
	}

	result, err := e.gateway.Classify(ctx, job.Text, job.Source)
	if err != nil {
		log.Printf("Worker %d: classification degraded for %s/%s: %v", workerID, job.Source, job.SourceID, err)
	}

	dbCtx := context.Background()
	analysis := newAnalysis(job, result)
	if err := e.store.CreateAnalysis(dbCtx, analysis); err != nil {
		log.Printf("ERROR: worker %d failed to persist analysis for %s/%s: %v", workerID, job.Source, job.SourceID, err)
		e.requeue(job)
		return
	}

	if _, err := e.RecomputeDaily(dbCtx, job.UserID, analysis.Day()); err != nil {
		log.Printf("ERROR: worker %d failed daily rollup for %s on %s: %v", workerID, job.UserID, analysis.Day(), err)
		return
	}

	if job.Source == types.SourceJournal && e.similarity != nil {
		e.storeEmbedding(ctx, job)
	}
}

// newAnalysis builds the persisted record for one classification result.
func newAnalysis(job *classifyJob, result *ai.Classification) *types.MoodAnalysis {
	return &types.MoodAnalysis{
		ID:            uuid.NewString(),
		UserID:        job.UserID,
		Source:        job.Source,
		SourceID:      job.SourceID,
		PrimaryMood:   result.PrimaryMood,
		SecondaryMood: result.SecondaryMood,
		Intensity:     result.Intensity,
		Confidence:    result.Confidence,
		Reasoning:     result.Reasoning,
		KeyEmotions:   result.KeyEmotions,
		AnalyzedText:  job.Text,
		CreatedAt:     time.Now(),
	}
}

// requeue puts a failed job back on the queue with an incremented
// attempt counter, up to three attempts. Requeueing stops during
// shutdown so the queue can drain.
func (e *Engine) requeue(job *classifyJob) {
	e.mu.RLock()
	canQueue := e.started && !e.shuttingDown
	e.mu.RUnlock()
	if !canQueue || job.Attempt >= 2 {
		log.Printf("Dropping classification job for %s/%s after %d attempts", job.Source, job.SourceID, job.Attempt+1)
		return
	}

	retry := *job
	retry.Attempt++
	select {
	case e.classifyQueue <- &retry:
	default:
		log.Printf("Queue full, dropping retry for %s/%s", job.Source, job.SourceID)
	}
}

// storeEmbedding generates and persists the journal entry's embedding.
// Failures are logged and ignored; related-entry lookup degrades to
// fewer results.
func (e *Engine) storeEmbedding(ctx context.Context, job *classifyJob) {
	vec, err := e.embedder.Embed(ctx, job.Text)
	if err != nil {
		log.Printf("WARNING: embedding generation failed for entry %s: %v", job.SourceID, err)
		return
	}
	if err := e.similarity.StoreJournalEmbedding(context.Background(), job.UserID, job.SourceID, e.embedder.GetModel(), vec); err != nil {
		log.Printf("WARNING: embedding persist failed for entry %s: %v", job.SourceID, err)
	}
}
