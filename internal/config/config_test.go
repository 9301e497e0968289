package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NLP.ConfidenceThreshold != 0.7 {
		t.Fatalf("threshold=%v, want 0.7", cfg.NLP.ConfidenceThreshold)
	}
	if cfg.NLP.SentimentThresholds.Positive != 0.3 || cfg.NLP.SentimentThresholds.Negative != -0.3 {
		t.Fatalf("cuts=%+v, want ±0.3", cfg.NLP.SentimentThresholds)
	}
	if cfg.Bot.Language != "tr" {
		t.Fatalf("language=%q, want tr", cfg.Bot.Language)
	}
	if cfg.Server.HTTPAddr != ":9020" {
		t.Fatalf("addr=%q, want :9020", cfg.Server.HTTPAddr)
	}
	if cfg.ModelTimeout() != 1500*time.Millisecond {
		t.Fatalf("timeout=%v, want 1.5s", cfg.ModelTimeout())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destek.yaml")
	content := `
bot:
  name: Test Bot
nlp:
  confidence_threshold: 0.5
  sentiment_thresholds:
    positive: 0.2
    negative: -0.2
responses:
  empathy_prefixes:
    - "Anlıyorum."
server:
  http_addr: ":8080"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Name != "Test Bot" {
		t.Fatalf("name=%q, want Test Bot", cfg.Bot.Name)
	}
	if cfg.NLP.ConfidenceThreshold != 0.5 {
		t.Fatalf("threshold=%v, want 0.5", cfg.NLP.ConfidenceThreshold)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("addr=%q, want :8080", cfg.Server.HTTPAddr)
	}
	if len(cfg.Responses.EmpathyPrefixes) != 1 {
		t.Fatalf("prefixes=%v, want the configured list", cfg.Responses.EmpathyPrefixes)
	}
	// Unset fields keep their defaults.
	if cfg.Bot.Language != "tr" {
		t.Fatalf("language=%q, want default tr", cfg.Bot.Language)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DESTEK_HTTP_ADDR", ":7070")
	t.Setenv("SENTIMENT_SERVICE_URL", "http://localhost:9021")
	t.Setenv("MODEL_TIMEOUT_MS", "250")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":7070" {
		t.Fatalf("addr=%q, want env override", cfg.Server.HTTPAddr)
	}
	if cfg.NLP.SentimentServiceURL != "http://localhost:9021" {
		t.Fatalf("url=%q, want env override", cfg.NLP.SentimentServiceURL)
	}
	if cfg.ModelTimeout() != 250*time.Millisecond {
		t.Fatalf("timeout=%v, want 250ms", cfg.ModelTimeout())
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destek.yaml")
	if err := os.WriteFile(path, []byte("nlp:\n  confidence_threshold: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("err=nil, want validation failure for threshold 1.5")
	}
}

func TestLoadRejectsInvertedCuts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destek.yaml")
	content := "nlp:\n  sentiment_thresholds:\n    positive: -0.3\n    negative: 0.3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("err=nil, want validation failure for inverted cut points")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("err=nil, want read failure")
	}
}
