package sentiment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"destek/internal/domain"
	"destek/internal/textnorm"
)

// Scorer is the external sentiment model capability: it returns a raw
// polarity in [-1,1]. Label mapping always happens here so both the
// lexicon path and a remote model honor the same configured cut points.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Thresholds are the polarity cut points. Polarity above Positive maps
// to positive, below Negative to negative, otherwise neutral.
type Thresholds struct {
	Positive float64
	Negative float64
}

type Config struct {
	Cuts          Thresholds
	ScorerTimeout time.Duration
}

// Analyzer maps normalized text to a sentiment label and score. It never
// returns an error; a failing external scorer degrades to the lexicon
// path with the result marked as degraded.
type Analyzer struct {
	cfg    Config
	scorer Scorer
	logger *slog.Logger
}

func NewAnalyzer(cfg Config, scorer Scorer, logger *slog.Logger) *Analyzer {
	if cfg.Cuts.Positive == 0 && cfg.Cuts.Negative == 0 {
		cfg.Cuts = Thresholds{Positive: 0.3, Negative: -0.3}
	}
	if cfg.ScorerTimeout <= 0 {
		cfg.ScorerTimeout = 1500 * time.Millisecond
	}
	return &Analyzer{cfg: cfg, scorer: scorer, logger: logger}
}

func (a *Analyzer) Analyze(ctx context.Context, text textnorm.Normalized) domain.SentimentResult {
	if strings.TrimSpace(text.Text) == "" {
		return domain.SentimentResult{Label: domain.SentimentNeutral, Score: 0}
	}

	if a.scorer != nil {
		scoreCtx, cancel := context.WithTimeout(ctx, a.cfg.ScorerTimeout)
		polarity, err := a.scorer.Score(scoreCtx, text.Text)
		cancel()
		if err == nil {
			return a.fromPolarity(polarity)
		}
		a.logger.Warn("sentiment model unavailable, using lexicon", "error", err)
		res := a.fromPolarity(Polarity(text))
		res.Degraded = true
		return res
	}

	return a.fromPolarity(Polarity(text))
}

func (a *Analyzer) fromPolarity(p float64) domain.SentimentResult {
	p = clamp(p, -1, 1)
	switch {
	case p > a.cfg.Cuts.Positive:
		return domain.SentimentResult{Label: domain.SentimentPositive, Score: p}
	case p < a.cfg.Cuts.Negative:
		return domain.SentimentResult{Label: domain.SentimentNegative, Score: -p}
	default:
		return domain.SentimentResult{Label: domain.SentimentNeutral, Score: 1 - abs(p)}
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
