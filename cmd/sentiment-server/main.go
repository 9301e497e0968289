package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"destek/internal/sentiment"
	"destek/internal/textnorm"
)

type serverConfig struct {
	HTTPAddr        string
	Language        string
	ReadBodyMaxByte int64
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
	LatencyMS float64 `json:"latency_ms"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := loadConfig()

	normalizer := textnorm.New(cfg.Language)
	analyzer := sentiment.NewAnalyzer(sentiment.Config{}, nil, logger)

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"engine":   "lexicon",
			"language": cfg.Language,
		})
	})
	r.Post("/v1/sentiment/score", func(w http.ResponseWriter, req *http.Request) {
		var in scoreRequest
		if err := decodeJSONBody(req, cfg.ReadBodyMaxByte, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if strings.TrimSpace(in.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "text is required"})
			return
		}

		start := time.Now()
		normalized := normalizer.Normalize(in.Text)
		out := analyzer.Analyze(req.Context(), normalized)
		writeJSON(w, http.StatusOK, scoreResponse{
			Score:     sentiment.Polarity(normalized),
			Label:     string(out.Label),
			LatencyMS: roundMillis(time.Since(start)),
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Info("sentiment server started", "addr", cfg.HTTPAddr, "language", cfg.Language)
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

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func loadConfig() serverConfig {
	return serverConfig{
		HTTPAddr:        getenvDefault("SENTIMENT_HTTP_ADDR", ":9021"),
		Language:        getenvDefault("SENTIMENT_LANGUAGE", "tr"),
		ReadBodyMaxByte: int64(getenvIntDefault("SENTIMENT_MAX_BODY_BYTES", 65536)),
	}
}

func getenvDefault(key, val string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000.0
	return math.Round(ms*1000) / 1000
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
