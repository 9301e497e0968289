package respond

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"destek/internal/domain"
	"destek/internal/session"
)

// ErrNoFallbackBucket means the template table has no usable bucket for
// the unknown intent. That is a configuration fault, not a per-request
// failure: every other lookup miss recovers through the fallback chain.
var ErrNoFallbackBucket = errors.New("template table has no unknown fallback bucket")

// Key addresses one template bucket.
type Key struct {
	Intent    domain.IntentLabel
	Sentiment domain.SentimentLabel
}

// Table is the read-only reply template table, keyed by
// (intent, sentiment). Built once at startup, never mutated afterwards.
type Table struct {
	buckets map[Key][]string
}

func NewTable(buckets map[Key][]string) (*Table, error) {
	clean := make(map[Key][]string, len(buckets))
	for k, candidates := range buckets {
		kept := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if strings.TrimSpace(c) != "" {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			clean[k] = kept
		}
	}
	if len(clean[Key{domain.IntentUnknown, domain.SentimentNeutral}]) == 0 {
		return nil, ErrNoFallbackBucket
	}
	return &Table{buckets: clean}, nil
}

// Lookup walks the fallback chain: exact (intent, sentiment), then
// (intent, neutral), then the generic unknown bucket.
func (t *Table) Lookup(intent domain.IntentLabel, sentiment domain.SentimentLabel) []string {
	if c := t.buckets[Key{intent, sentiment}]; len(c) > 0 {
		return c
	}
	if c := t.buckets[Key{intent, domain.SentimentNeutral}]; len(c) > 0 {
		return c
	}
	return t.buckets[Key{domain.IntentUnknown, domain.SentimentNeutral}]
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

type Config struct {
	BotName string
	// EmpathyPrefixes are prepended to the reply body when a negative
	// message is a complaint or a refund request. At least one entry is
	// expected; an empty list disables the escalation clause.
	EmpathyPrefixes []string
}

// Selector picks and fills a reply template from intent, sentiment and
// the session's state. It reads state but never mutates it; the
// orchestrator owns all state mutation.
type Selector struct {
	table *Table
	cfg   Config
}

func NewSelector(table *Table, cfg Config) *Selector {
	return &Selector{table: table, cfg: cfg}
}

func (s *Selector) Select(intent domain.IntentResult, sentiment domain.SentimentResult, state session.State) (string, error) {
	candidates := s.table.Lookup(intent.Label, sentiment.Label)
	if len(candidates) == 0 {
		return "", fmt.Errorf("select reply for intent %q: %w", intent.Label, ErrNoFallbackBucket)
	}

	// Rotate by turn count so consecutive turns of the same intent never
	// repeat the same candidate.
	reply := candidates[state.TurnCount%len(candidates)]
	reply = s.fill(reply, state)

	if sentiment.Label == domain.SentimentNegative && escalates(intent.Label) && len(s.cfg.EmpathyPrefixes) > 0 {
		prefix := s.cfg.EmpathyPrefixes[state.TurnCount%len(s.cfg.EmpathyPrefixes)]
		reply = prefix + " " + reply
	}
	return reply, nil
}

// escalates reports whether negative sentiment on this intent requires
// the empathy clause.
func escalates(label domain.IntentLabel) bool {
	return label == domain.IntentComplaint || label == domain.IntentRefund
}

// fill expands {slot} placeholders from session context. Unknown slots
// become empty strings rather than failing.
func (s *Selector) fill(template string, state session.State) string {
	out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		switch strings.Trim(m, "{}") {
		case "bot_name":
			return s.cfg.BotName
		case "last_intent":
			return string(state.LastIntent)
		case "last_sentiment":
			return string(state.LastSentiment)
		default:
			return ""
		}
	})
	return strings.Join(strings.Fields(out), " ")
}
