package botdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"destek/internal/domain"
	"destek/internal/intent"
	"destek/internal/respond"
	"destek/internal/textnorm"
)

// Intent is one entry of the training/template data: a tag, the
// canonical patterns that identify it, and reply candidates per
// sentiment bucket.
type Intent struct {
	Tag       string
	Patterns  []string
	Responses map[domain.SentimentLabel][]string
}

// Set is the loaded intent/template data, in file order. Definitions
// reorders entries canonically for the classifier.
type Set struct {
	Intents []Intent
}

type rawIntent struct {
	Tag       string       `json:"tag"`
	Patterns  []string     `json:"patterns"`
	Responses rawResponses `json:"responses"`
}

// rawResponses accepts either the bucketed object form or the legacy
// flat list, which maps to the neutral bucket.
type rawResponses map[domain.SentimentLabel][]string

func (r *rawResponses) UnmarshalJSON(data []byte) error {
	var buckets map[domain.SentimentLabel][]string
	if err := json.Unmarshal(data, &buckets); err == nil {
		*r = buckets
		return nil
	}
	var flat []string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*r = rawResponses{domain.SentimentNeutral: flat}
	return nil
}

// Load reads the intent data file. A malformed entry disables only that
// intent: it lands in the returned skipped list and the rest of the set
// stays usable. The load fails only when the file itself is unreadable
// or no usable unknown bucket remains.
func Load(path string) (*Set, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var file struct {
		Intents []json.RawMessage `json:"intents"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse intent data: %w", err)
	}

	set := &Set{}
	var skipped []string
	for i, raw := range file.Intents {
		var ri rawIntent
		if err := json.Unmarshal(raw, &ri); err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d", i))
			continue
		}
		it, err := ri.validate()
		if err != nil {
			tag := ri.Tag
			if tag == "" {
				tag = fmt.Sprintf("entry %d", i)
			}
			skipped = append(skipped, tag)
			continue
		}
		set.Intents = append(set.Intents, it)
	}

	if err := set.check(); err != nil {
		return nil, skipped, err
	}
	return set, skipped, nil
}

func (r rawIntent) validate() (Intent, error) {
	tag := strings.TrimSpace(r.Tag)
	if tag == "" {
		return Intent{}, fmt.Errorf("missing tag")
	}
	if !knownLabel(tag) {
		return Intent{}, fmt.Errorf("intent %q is not a recognized label", tag)
	}
	responses := make(map[domain.SentimentLabel][]string)
	for bucket, replies := range r.Responses {
		switch bucket {
		case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		default:
			continue
		}
		kept := make([]string, 0, len(replies))
		for _, reply := range replies {
			if strings.TrimSpace(reply) != "" {
				kept = append(kept, reply)
			}
		}
		if len(kept) > 0 {
			responses[bucket] = kept
		}
	}
	if len(responses) == 0 {
		return Intent{}, fmt.Errorf("intent %q has no responses", tag)
	}
	if tag != string(domain.IntentUnknown) && len(r.Patterns) == 0 {
		return Intent{}, fmt.Errorf("intent %q has no patterns", tag)
	}
	return Intent{Tag: tag, Patterns: r.Patterns, Responses: responses}, nil
}

func (s *Set) check() error {
	for _, it := range s.Intents {
		if it.Tag == string(domain.IntentUnknown) && len(it.Responses[domain.SentimentNeutral]) > 0 {
			return nil
		}
	}
	return respond.ErrNoFallbackBucket
}

func knownLabel(tag string) bool {
	for _, label := range domain.IntentOrder() {
		if tag == string(label) {
			return true
		}
	}
	return false
}

// Definitions tokenizes every intent's patterns with the given
// normalizer for the keyword classifier. Entries are emitted in
// domain.IntentOrder so classifier tie-breaks resolve to the canonical
// ordering regardless of data-file order.
func (s *Set) Definitions(n *textnorm.Normalizer) []intent.Definition {
	defs := make([]intent.Definition, 0, len(s.Intents))
	for _, label := range domain.IntentOrder() {
		for _, it := range s.Intents {
			if it.Tag != string(label) {
				continue
			}
			d := intent.Definition{Label: label}
			for _, p := range it.Patterns {
				if tokens := n.Normalize(p).Tokens; len(tokens) > 0 {
					d.Patterns = append(d.Patterns, tokens)
				}
			}
			defs = append(defs, d)
		}
	}
	return defs
}

// Buckets builds the response-selector template table.
func (s *Set) Buckets() map[respond.Key][]string {
	buckets := make(map[respond.Key][]string)
	for _, it := range s.Intents {
		for sentiment, replies := range it.Responses {
			key := respond.Key{Intent: domain.IntentLabel(it.Tag), Sentiment: sentiment}
			buckets[key] = append(buckets[key], replies...)
		}
	}
	return buckets
}

// Tags lists the set's intent tags in order.
func (s *Set) Tags() []string {
	tags := make([]string, 0, len(s.Intents))
	for _, it := range s.Intents {
		tags = append(tags, it.Tag)
	}
	return tags
}
