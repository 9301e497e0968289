package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"destek/internal/botdata"
	"destek/internal/config"
	"destek/internal/domain"
	"destek/internal/intent"
	"destek/internal/orchestrator"
	"destek/internal/respond"
	"destek/internal/sentiment"
	"destek/internal/session"
	"destek/internal/textnorm"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	metaStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// chat-cli runs the full pipeline in process, no server needed. Useful
// for trying out intent data files and response rotation from a
// terminal.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	configPath := flag.String("config", os.Getenv("DESTEK_CONFIG"), "path to the YAML config file")
	showMeta := flag.Bool("meta", true, "print intent and sentiment details after each reply")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("config: "+err.Error()))
		os.Exit(1)
	}

	data := botdata.Default()
	if cfg.Data.IntentsPath != "" {
		loaded, skipped, loadErr := botdata.Load(cfg.Data.IntentsPath)
		if loadErr != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("intent data: "+loadErr.Error()))
			os.Exit(1)
		}
		for _, tag := range skipped {
			fmt.Fprintln(os.Stderr, metaStyle.Render("intent entry disabled: "+tag))
		}
		data = loaded
	}

	table, err := respond.NewTable(data.Buckets())
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("response table: "+err.Error()))
		os.Exit(1)
	}

	empathy := cfg.Responses.EmpathyPrefixes
	if len(empathy) == 0 {
		empathy = botdata.DefaultEmpathyPrefixes()
	}

	normalizer := textnorm.New(cfg.Bot.Language)
	classifier := intent.NewClassifier(intent.Config{
		Threshold:  cfg.NLP.ConfidenceThreshold,
		TieEpsilon: cfg.NLP.TieEpsilon,
	}, data.Definitions(normalizer), nil, logger)
	analyzer := sentiment.NewAnalyzer(sentiment.Config{
		Cuts: sentiment.Thresholds{
			Positive: cfg.NLP.SentimentThresholds.Positive,
			Negative: cfg.NLP.SentimentThresholds.Negative,
		},
	}, nil, logger)
	selector := respond.NewSelector(table, respond.Config{
		BotName:         cfg.Bot.Name,
		EmpathyPrefixes: empathy,
	})
	sessions := session.NewManager()
	orch := orchestrator.New(normalizer, classifier, analyzer, selector, sessions, logger)

	sessionID := uuid.NewString()

	fmt.Println(titleStyle.Render(cfg.Bot.Name))
	fmt.Println(metaStyle.Render(fmt.Sprintf("session %s | /reset yeni oturum | /quit çıkış", sessionID)))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			orch.Reset(sessionID)
			sessionID = uuid.NewString()
			fmt.Println(metaStyle.Render("yeni oturum: " + sessionID))
			continue
		}

		res, err := orch.Handle(context.Background(), domain.Message{
			SessionID:  sessionID,
			Text:       line,
			ReceivedAt: time.Now(),
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
			continue
		}

		fmt.Println(botStyle.Render(res.Reply))
		if *showMeta {
			fmt.Println(metaStyle.Render(fmt.Sprintf("intent=%s (%.2f) sentiment=%s turn=%d",
				res.Intent.Label, res.Intent.Confidence, res.Sentiment.Label, res.TurnCount)))
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("stdin: "+err.Error()))
		os.Exit(1)
	}
}
