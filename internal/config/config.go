package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type BotConfig struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Language string `yaml:"language"`
}

type SentimentThresholds struct {
	Positive float64 `yaml:"positive"`
	Negative float64 `yaml:"negative"`
}

type NLPConfig struct {
	SentimentModel      string              `yaml:"sentiment_model"`
	ConfidenceThreshold float64             `yaml:"confidence_threshold"`
	TieEpsilon          float64             `yaml:"tie_epsilon"`
	SentimentThresholds SentimentThresholds `yaml:"sentiment_thresholds"`
	ModelTimeoutMS      int                 `yaml:"model_timeout_ms"`
	IntentServiceURL    string              `yaml:"intent_service_url"`
	SentimentServiceURL string              `yaml:"sentiment_service_url"`
}

type DataConfig struct {
	IntentsPath string `yaml:"intents_path"`
}

type ResponsesConfig struct {
	EmpathyPrefixes []string `yaml:"empathy_prefixes"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

type AnalyticsConfig struct {
	DSN string `yaml:"dsn"`
}

type MQTTConfig struct {
	BrokerURL   string `yaml:"broker_url"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Config is the full bot configuration. The pipeline consumes it as
// already-validated values; Load is the only place that parses and
// checks anything.
type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	NLP       NLPConfig       `yaml:"nlp"`
	Data      DataConfig      `yaml:"data"`
	Responses ResponsesConfig `yaml:"responses"`
	Server    ServerConfig    `yaml:"server"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
}

func defaults() Config {
	return Config{
		Bot: BotConfig{
			Name:     "Akıllı Müşteri Hizmetleri Asistanı",
			Version:  "1.0.0",
			Language: "tr",
		},
		NLP: NLPConfig{
			SentimentModel:      "lexicon-tr-v1",
			ConfidenceThreshold: 0.7,
			TieEpsilon:          0.01,
			SentimentThresholds: SentimentThresholds{Positive: 0.3, Negative: -0.3},
			ModelTimeoutMS:      1500,
		},
		Server: ServerConfig{HTTPAddr: ":9020"},
		MQTT:   MQTTConfig{ClientID: "destek-server", TopicPrefix: "destek"},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Server.HTTPAddr = getenvDefault("DESTEK_HTTP_ADDR", cfg.Server.HTTPAddr)
	cfg.Data.IntentsPath = getenvDefault("DESTEK_INTENTS_PATH", cfg.Data.IntentsPath)
	cfg.Analytics.DSN = getenvDefault("DB_DSN", cfg.Analytics.DSN)
	cfg.MQTT.BrokerURL = getenvDefault("MQTT_BROKER_URL", cfg.MQTT.BrokerURL)
	cfg.MQTT.ClientID = getenvDefault("DESTEK_MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.Username = getenvDefault("MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = getenvDefault("MQTT_PASSWORD", cfg.MQTT.Password)
	cfg.MQTT.TopicPrefix = getenvDefault("MQTT_TOPIC_PREFIX", cfg.MQTT.TopicPrefix)
	cfg.NLP.IntentServiceURL = getenvDefault("INTENT_SERVICE_URL", cfg.NLP.IntentServiceURL)
	cfg.NLP.SentimentServiceURL = getenvDefault("SENTIMENT_SERVICE_URL", cfg.NLP.SentimentServiceURL)
	cfg.NLP.ModelTimeoutMS = getenvIntDefault("MODEL_TIMEOUT_MS", cfg.NLP.ModelTimeoutMS)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.NLP.ConfidenceThreshold <= 0 || c.NLP.ConfidenceThreshold > 1 {
		return fmt.Errorf("nlp.confidence_threshold must be in (0,1], got %v", c.NLP.ConfidenceThreshold)
	}
	if c.NLP.SentimentThresholds.Positive <= c.NLP.SentimentThresholds.Negative {
		return fmt.Errorf("nlp.sentiment_thresholds.positive must exceed negative")
	}
	if c.NLP.TieEpsilon < 0 {
		return fmt.Errorf("nlp.tie_epsilon must not be negative")
	}
	if c.NLP.ModelTimeoutMS <= 0 {
		return fmt.Errorf("nlp.model_timeout_ms must be positive")
	}
	if c.Bot.Language == "" {
		return fmt.Errorf("bot.language is required")
	}
	return nil
}

// ModelTimeout is the bound for a single external model call.
func (c Config) ModelTimeout() time.Duration {
	return time.Duration(c.NLP.ModelTimeoutMS) * time.Millisecond
}

func getenvDefault(key, val string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := os.Getenv(key)
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}
