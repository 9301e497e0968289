package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"destek/internal/domain"
	"destek/internal/intent"
	"destek/internal/respond"
	"destek/internal/sentiment"
	"destek/internal/session"
	"destek/internal/textnorm"
)

// Service is the pipeline entry point. It sequences
// normalize → classify/analyze → state read → select → state update and
// is the only component allowed to mutate the session manager.
type Service struct {
	normalizer *textnorm.Normalizer
	classifier *intent.Classifier
	analyzer   *sentiment.Analyzer
	selector   *respond.Selector
	sessions   *session.Manager
	logger     *slog.Logger
}

func New(normalizer *textnorm.Normalizer, classifier *intent.Classifier, analyzer *sentiment.Analyzer, selector *respond.Selector, sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{
		normalizer: normalizer,
		classifier: classifier,
		analyzer:   analyzer,
		selector:   selector,
		sessions:   sessions,
		logger:     logger,
	}
}

// Handle runs the full pipeline for one message. Degraded upstream
// results still produce a reply; the only possible error is the
// selector's missing-fallback-bucket configuration fault. The session's
// turn lock is held for the whole call so per-session results reflect
// request arrival order.
func (s *Service) Handle(ctx context.Context, msg domain.Message) (domain.AnalysisResult, error) {
	start := time.Now()

	var out domain.AnalysisResult
	var selectErr error
	s.sessions.Do(msg.SessionID, func() {
		normalized := s.normalizer.Normalize(msg.Text)

		// Classification and sentiment are independent; run them
		// concurrently. Neither ever returns an error.
		var intentRes domain.IntentResult
		var sentimentRes domain.SentimentResult
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			intentRes = s.classifier.Classify(gctx, normalized)
			return nil
		})
		g.Go(func() error {
			sentimentRes = s.analyzer.Analyze(gctx, normalized)
			return nil
		})
		_ = g.Wait()

		state := s.sessions.GetOrCreate(msg.SessionID)
		reply, err := s.selector.Select(intentRes, sentimentRes, state)
		if err != nil {
			selectErr = err
			return
		}

		updated := s.sessions.Update(msg.SessionID, intentRes.Label, sentimentRes.Label)
		out = domain.AnalysisResult{
			SessionID: msg.SessionID,
			Reply:     reply,
			Intent:    intentRes,
			Sentiment: sentimentRes,
			TurnCount: updated.TurnCount,
		}
	})
	if selectErr != nil {
		return domain.AnalysisResult{}, selectErr
	}

	s.logger.Info("message handled",
		"session_id", msg.SessionID,
		"intent", out.Intent.Label,
		"intent_confidence", out.Intent.Confidence,
		"sentiment", out.Sentiment.Label,
		"sentiment_degraded", out.Sentiment.Degraded,
		"turn_count", out.TurnCount,
		"total_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Reset discards a session's conversation state. Exposed for the
// management surfaces; unknown session ids are a no-op.
func (s *Service) Reset(sessionID string) {
	s.sessions.Reset(sessionID)
}
