package botdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"destek/internal/domain"
	"destek/internal/respond"
	"destek/internal/textnorm"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intents.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestLoadBucketedResponses(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{
				"tag": "complaint",
				"patterns": ["şikayet"],
				"responses": {
					"neutral": ["Detayları paylaşır mısınız?"],
					"negative": ["Hemen ilgileniyorum."]
				}
			},
			{
				"tag": "unknown",
				"patterns": [],
				"responses": {"neutral": ["Anlayamadım."]}
			}
		]
	}`)

	set, skipped, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped=%v, want none", skipped)
	}
	if len(set.Intents) != 2 {
		t.Fatalf("intents=%d, want 2", len(set.Intents))
	}
	got := set.Intents[0].Responses[domain.SentimentNegative]
	if len(got) != 1 || got[0] != "Hemen ilgileniyorum." {
		t.Fatalf("negative bucket=%v, want the configured reply", got)
	}
}

func TestLoadLegacyFlatResponses(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{
				"tag": "greeting",
				"patterns": ["merhaba"],
				"responses": ["Merhaba!", "Hoş geldiniz!"]
			},
			{
				"tag": "unknown",
				"responses": ["Anlayamadım."]
			}
		]
	}`)

	set, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := set.Intents[0].Responses[domain.SentimentNeutral]
	if len(got) != 2 {
		t.Fatalf("neutral bucket=%v, want the flat list mapped to neutral", got)
	}
}

func TestLoadSkipsMalformedEntry(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{"tag": "", "patterns": ["x"], "responses": ["y"]},
			{"tag": "no_responses", "patterns": ["z"], "responses": []},
			{"tag": "greeting", "patterns": ["merhaba"], "responses": ["Merhaba!"]},
			{"tag": "unknown", "responses": ["Anlayamadım."]}
		]
	}`)

	set, skipped, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(skipped) != 2 {
		t.Fatalf("skipped=%v, want 2 entries", skipped)
	}
	if len(set.Intents) != 2 {
		t.Fatalf("intents=%d, want malformed entries dropped", len(set.Intents))
	}
}

func TestLoadSkipsUnrecognizedTag(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{"tag": "banter", "patterns": ["espri"], "responses": ["Ha ha."]},
			{"tag": "greeting", "patterns": ["merhaba"], "responses": ["Merhaba!"]},
			{"tag": "unknown", "responses": ["Anlayamadım."]}
		]
	}`)

	set, skipped, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != "banter" {
		t.Fatalf("skipped=%v, want the unrecognized tag only", skipped)
	}
	if len(set.Intents) != 2 {
		t.Fatalf("intents=%d, want 2", len(set.Intents))
	}
}

func TestDefinitionsFollowCanonicalOrder(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{"tag": "complaint", "patterns": ["şikayet"], "responses": ["Detayları paylaşır mısınız?"]},
			{"tag": "greeting", "patterns": ["merhaba"], "responses": ["Merhaba!"]},
			{"tag": "unknown", "responses": ["Anlayamadım."]}
		]
	}`)

	set, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defs := set.Definitions(textnorm.New("tr"))
	want := []domain.IntentLabel{domain.IntentGreeting, domain.IntentComplaint, domain.IntentUnknown}
	if len(defs) != len(want) {
		t.Fatalf("definitions=%d, want %d", len(defs), len(want))
	}
	for i, label := range want {
		if defs[i].Label != label {
			t.Fatalf("defs[%d]=%s, want %s", i, defs[i].Label, label)
		}
	}
}

func TestLoadFailsWithoutUnknownBucket(t *testing.T) {
	path := writeDataFile(t, `{
		"intents": [
			{"tag": "greeting", "patterns": ["merhaba"], "responses": ["Merhaba!"]}
		]
	}`)

	_, _, err := Load(path)
	if !errors.Is(err, respond.ErrNoFallbackBucket) {
		t.Fatalf("err=%v, want ErrNoFallbackBucket", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("err=nil, want read failure")
	}
}

func TestDefaultSetIsUsable(t *testing.T) {
	set := Default()
	if err := set.check(); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := respond.NewTable(set.Buckets()); err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	defs := set.Definitions(textnorm.New("tr"))
	if len(defs) != len(set.Intents) {
		t.Fatalf("definitions=%d, want %d", len(defs), len(set.Intents))
	}
	for _, d := range defs {
		if d.Label != domain.IntentUnknown && len(d.Patterns) == 0 {
			t.Fatalf("intent %s has no tokenized patterns", d.Label)
		}
	}
}
