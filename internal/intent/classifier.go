package intent

import (
	"context"
	"log/slog"
	"time"

	"destek/internal/domain"
	"destek/internal/textnorm"
)

// Model is the external classifier capability. Implementations are
// selected at startup; the keyword path below is the degraded fallback
// when no model is configured or the model call fails.
type Model interface {
	Classify(ctx context.Context, text string) (domain.IntentResult, error)
}

// Definition is one intent's matching material: the label and its
// canonical patterns, already normalized and tokenized. Slice order is
// the configured tie-break order.
type Definition struct {
	Label    domain.IntentLabel
	Patterns [][]string
}

type Config struct {
	// Threshold is the minimum top score that keeps the arg-max label.
	// Scores exactly at the threshold are kept; below it the label is
	// demoted to unknown while the raw score is still reported.
	Threshold float64
	// TieEpsilon bounds "effectively equal" top scores; ties resolve to
	// the definition listed first.
	TieEpsilon float64
	// ModelTimeout bounds a single external model call.
	ModelTimeout time.Duration
}

const (
	coverageWeight = 0.6
	patternWeight  = 0.4
)

type candidate struct {
	label    domain.IntentLabel
	patterns [][]string
	keywords map[string]struct{}
}

// Classifier maps normalized text to an intent label with a confidence
// score. It never returns an error: model failures degrade to the
// keyword path, and a total miss yields unknown with confidence 0.
type Classifier struct {
	cfg        Config
	candidates []candidate
	model      Model
	logger     *slog.Logger
}

func NewClassifier(cfg Config, defs []Definition, model Model, logger *slog.Logger) *Classifier {
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = 0.7
	}
	if cfg.TieEpsilon <= 0 {
		cfg.TieEpsilon = 0.01
	}
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 1500 * time.Millisecond
	}

	candidates := make([]candidate, 0, len(defs))
	for _, d := range defs {
		if d.Label == domain.IntentUnknown || len(d.Patterns) == 0 {
			continue
		}
		c := candidate{label: d.Label, keywords: make(map[string]struct{})}
		for _, p := range d.Patterns {
			if len(p) == 0 {
				continue
			}
			c.patterns = append(c.patterns, p)
			for _, tok := range p {
				c.keywords[tok] = struct{}{}
			}
		}
		if len(c.patterns) == 0 {
			continue
		}
		candidates = append(candidates, c)
	}

	return &Classifier{cfg: cfg, candidates: candidates, model: model, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, text textnorm.Normalized) domain.IntentResult {
	if c.model != nil {
		modelCtx, cancel := context.WithTimeout(ctx, c.cfg.ModelTimeout)
		res, err := c.model.Classify(modelCtx, text.Text)
		cancel()
		if err == nil {
			return c.gate(res.Label, clamp01(res.Confidence))
		}
		c.logger.Warn("intent model unavailable, using keyword matching", "error", err)
	}

	label, score := c.keywordMatch(text.Tokens)
	return c.gate(label, score)
}

// gate applies the confidence threshold: sub-threshold labels are
// demoted to unknown but keep their raw score so callers can see how
// close the match was.
func (c *Classifier) gate(label domain.IntentLabel, score float64) domain.IntentResult {
	if label == "" {
		label = domain.IntentUnknown
	}
	if label != domain.IntentUnknown && score < c.cfg.Threshold {
		label = domain.IntentUnknown
	}
	return domain.IntentResult{Label: label, Confidence: score}
}

// keywordMatch scores every intent against the message tokens and
// returns the arg-max. A tie within TieEpsilon keeps the earlier
// definition, which makes the outcome deterministic and stable.
func (c *Classifier) keywordMatch(tokens []string) (domain.IntentLabel, float64) {
	if len(tokens) == 0 {
		return domain.IntentUnknown, 0
	}

	best := domain.IntentUnknown
	bestScore := 0.0
	for i, cand := range c.candidates {
		score := cand.score(tokens)
		if i == 0 || score > bestScore+c.cfg.TieEpsilon {
			best = cand.label
			bestScore = score
		}
	}
	return best, bestScore
}

// score blends how much of the message the intent's keyword set covers
// with the closest single-pattern similarity. A message consisting of
// one canonical pattern scores 1.0.
func (cand candidate) score(tokens []string) float64 {
	covered := 0
	for _, tok := range tokens {
		if _, ok := cand.keywords[tok]; ok {
			covered++
		}
	}
	if covered == 0 {
		return 0
	}
	coverage := float64(covered) / float64(len(tokens))

	bestSim := 0.0
	for _, p := range cand.patterns {
		if sim := jaccard(tokens, p); sim > bestSim {
			bestSim = sim
		}
	}
	return coverageWeight*coverage + patternWeight*bestSim
}

func jaccard(a, b []string) float64 {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
