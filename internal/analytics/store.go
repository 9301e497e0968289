package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"destek/internal/domain"
)

// Store persists per-request analysis events for reporting. Only labels,
// confidences and turn counts are written, never message text or
// replies, so conversation content stays in memory only.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_events (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			intent TEXT NOT NULL,
			intent_confidence DOUBLE PRECISION NOT NULL,
			sentiment TEXT NOT NULL,
			sentiment_score DOUBLE PRECISION NOT NULL,
			degraded BOOLEAN NOT NULL DEFAULT FALSE,
			turn_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_events_intent ON analysis_events(intent);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_events_sentiment ON analysis_events(sentiment);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_events_created ON analysis_events(created_at);`,
	}
	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) RecordAnalysis(ctx context.Context, res domain.AnalysisResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO analysis_events (session_id, intent, intent_confidence, sentiment, sentiment_score, degraded, turn_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, res.SessionID, string(res.Intent.Label), res.Intent.Confidence,
		string(res.Sentiment.Label), res.Sentiment.Score, res.Sentiment.Degraded, res.TurnCount)
	return err
}

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func (s *Store) IntentCounts(ctx context.Context) ([]LabelCount, error) {
	return s.labelCounts(ctx, `
		SELECT intent, COUNT(*)
		FROM analysis_events
		GROUP BY intent
		ORDER BY COUNT(*) DESC, intent
	`)
}

func (s *Store) SentimentCounts(ctx context.Context) ([]LabelCount, error) {
	return s.labelCounts(ctx, `
		SELECT sentiment, COUNT(*)
		FROM analysis_events
		GROUP BY sentiment
		ORDER BY COUNT(*) DESC, sentiment
	`)
}

func (s *Store) TotalEvents(ctx context.Context) (int64, error) {
	var total int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analysis_events`).Scan(&total)
	return total, err
}

func (s *Store) labelCounts(ctx context.Context, query string) ([]LabelCount, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}
