package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/solacehq/solace/internal/storage"
)

// StoreJournalEmbedding implements storage.SimilarityProvider. One
// embedding per entry; re-analysis replaces the previous vector.
func (s *Store) StoreJournalEmbedding(ctx context.Context, userID, entryID, model string, embedding []float32) error {
	if err := storage.RequireUser(userID); err != nil {
		return err
	}
	if len(embedding) == 0 {
		return storage.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_embeddings (entry_id, user_id, model, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entry_id) DO UPDATE SET
			model = EXCLUDED.model,
			embedding = EXCLUDED.embedding,
			created_at = now()`,
		entryID, userID, model, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("postgres: store journal embedding: %w", err)
	}
	return nil
}

// SimilarJournalEntries implements storage.SimilarityProvider: the
// user's entries nearest the given entry by cosine distance, excluding
// the entry itself. No stored embedding for the probe entry means no
// related entries, not an error.
func (s *Store) SimilarJournalEntries(ctx context.Context, userID, entryID string, limit int) ([]*storage.SimilarEntry, error) {
	if err := storage.RequireUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	var probe pgvector.Vector
	err := s.db.QueryRowContext(ctx, `
		SELECT embedding FROM journal_embeddings WHERE entry_id = $1 AND user_id = $2`,
		entryID, userID).Scan(&probe)
	if errors.Is(err, sql.ErrNoRows) {
		return []*storage.SimilarEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load probe embedding: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.entry_id, j.title, 1 - (e.embedding <=> $1) AS similarity
		FROM journal_embeddings e
		JOIN journal_entries j ON j.id = e.entry_id
		WHERE e.user_id = $2 AND e.entry_id <> $3
		ORDER BY e.embedding <=> $1
		LIMIT $4`,
		probe, userID, entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: similar entries query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*storage.SimilarEntry
	for rows.Next() {
		var e storage.SimilarEntry
		if err := rows.Scan(&e.EntryID, &e.Title, &e.Similarity); err != nil {
			return nil, fmt.Errorf("postgres: scan similar entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
