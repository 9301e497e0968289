package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"destek/internal/analytics"
	"destek/internal/botdata"
	"destek/internal/config"
	"destek/internal/domain"
	"destek/internal/events"
	"destek/internal/intent"
	"destek/internal/orchestrator"
	"destek/internal/respond"
	"destek/internal/sentiment"
	"destek/internal/session"
	"destek/internal/textnorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	configPath := flag.String("config", os.Getenv("DESTEK_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	data := botdata.Default()
	if cfg.Data.IntentsPath != "" {
		loaded, skipped, loadErr := botdata.Load(cfg.Data.IntentsPath)
		if loadErr != nil {
			logger.Error("load intent data failed", "path", cfg.Data.IntentsPath, "error", loadErr)
			os.Exit(1)
		}
		for _, tag := range skipped {
			logger.Warn("intent entry disabled", "intent", tag)
		}
		data = loaded
	}

	table, err := respond.NewTable(data.Buckets())
	if err != nil {
		logger.Error("build template table failed", "error", err)
		os.Exit(1)
	}

	empathy := cfg.Responses.EmpathyPrefixes
	if len(empathy) == 0 {
		empathy = botdata.DefaultEmpathyPrefixes()
	}

	normalizer := textnorm.New(cfg.Bot.Language)

	var intentModel intent.Model
	if cfg.NLP.IntentServiceURL != "" {
		intentModel = intent.NewClient(cfg.NLP.IntentServiceURL, cfg.ModelTimeout())
		logger.Info("remote intent model enabled", "url", cfg.NLP.IntentServiceURL)
	}
	classifier := intent.NewClassifier(intent.Config{
		Threshold:    cfg.NLP.ConfidenceThreshold,
		TieEpsilon:   cfg.NLP.TieEpsilon,
		ModelTimeout: cfg.ModelTimeout(),
	}, data.Definitions(normalizer), intentModel, logger)

	var scorer sentiment.Scorer
	if cfg.NLP.SentimentServiceURL != "" {
		scorer = sentiment.NewClient(cfg.NLP.SentimentServiceURL, cfg.ModelTimeout())
		logger.Info("remote sentiment model enabled", "url", cfg.NLP.SentimentServiceURL, "model", cfg.NLP.SentimentModel)
	}
	analyzer := sentiment.NewAnalyzer(sentiment.Config{
		Cuts: sentiment.Thresholds{
			Positive: cfg.NLP.SentimentThresholds.Positive,
			Negative: cfg.NLP.SentimentThresholds.Negative,
		},
		ScorerTimeout: cfg.ModelTimeout(),
	}, scorer, logger)

	selector := respond.NewSelector(table, respond.Config{
		BotName:         cfg.Bot.Name,
		EmpathyPrefixes: empathy,
	})

	sessions := session.NewManager()
	orch := orchestrator.New(normalizer, classifier, analyzer, selector, sessions, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store *analytics.Store
	if cfg.Analytics.DSN != "" {
		store, err = analytics.New(ctx, cfg.Analytics.DSN)
		if err != nil {
			logger.Error("connect analytics store failed", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			logger.Error("migrate analytics store failed", "error", err)
			os.Exit(1)
		}
		logger.Info("analytics store enabled")
	}

	var hub *events.Hub
	if cfg.MQTT.BrokerURL != "" {
		hub = events.NewHub(events.HubConfig{
			BrokerURL:   cfg.MQTT.BrokerURL,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
		}, orch, logger)
		if err := hub.Start(ctx); err != nil {
			logger.Error("start mqtt hub failed", "error", err)
			os.Exit(1)
		}
		logger.Info("mqtt hub enabled", "broker", cfg.MQTT.BrokerURL, "topic_prefix", cfg.MQTT.TopicPrefix)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "bot": cfg.Bot.Name})
	})

	r.Post("/v1/chat", func(w http.ResponseWriter, req *http.Request) {
		var chatReq domain.ChatRequest
		if err := json.NewDecoder(req.Body).Decode(&chatReq); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if strings.TrimSpace(chatReq.Message) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "message is required"})
			return
		}
		sessionID := strings.TrimSpace(chatReq.SessionID)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		res, err := orch.Handle(req.Context(), domain.Message{
			SessionID:  sessionID,
			Text:       chatReq.Message,
			ReceivedAt: time.Now(),
		})
		if err != nil {
			logger.Error("chat failed", "session_id", sessionID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
			return
		}

		if store != nil {
			go func() {
				recordCtx, recordCancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer recordCancel()
				if err := store.RecordAnalysis(recordCtx, res); err != nil {
					logger.Warn("record analysis event failed", "error", err)
				}
			}()
		}
		if hub != nil {
			go hub.PublishAnalysis(res)
		}

		writeJSON(w, http.StatusOK, domain.ChatResponse{
			Text:             res.Reply,
			Intent:           res.Intent.Label,
			IntentConfidence: res.Intent.Confidence,
			Sentiment:        res.Sentiment,
			TurnCount:        res.TurnCount,
			SessionID:        sessionID,
			BotName:          cfg.Bot.Name,
			Timestamp:        time.Now().Format("2006-01-02 15:04:05"),
		})
	})

	r.Post("/v1/sessions/{sessionID}/reset", func(w http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, "sessionID")
		orch.Reset(sessionID)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session_id": sessionID})
	})

	r.Get("/v1/bot", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, domain.BotInfo{
			Name:             cfg.Bot.Name,
			Version:          cfg.Bot.Version,
			Language:         cfg.Bot.Language,
			SupportedIntents: data.Tags(),
			Features:         []string{"intent recognition", "sentiment analysis", "automatic response"},
		})
	})

	r.Get("/v1/stats", func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "analytics is not configured"})
			return
		}
		intents, err := store.IntentCounts(req.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "stats query failed"})
			return
		}
		sentiments, err := store.SentimentCounts(req.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "stats query failed"})
			return
		}
		total, err := store.TotalEvents(req.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "stats query failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"total_messages":  total,
			"active_sessions": sessions.ActiveSessions(),
			"intents":         intents,
			"sentiments":      sentiments,
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("destek server started", "addr", cfg.Server.HTTPAddr, "bot", cfg.Bot.Name, "language", cfg.Bot.Language)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
