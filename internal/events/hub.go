package events

import (
	"context"
	"encoding/json"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"

	"destek/internal/domain"
)

type HubConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// SessionResetter is the management hook the hub drives when a reset
// command arrives over the broker.
type SessionResetter interface {
	Reset(sessionID string)
}

// Hub connects the pipeline to an MQTT broker: analysis summaries go out
// on {prefix}/analysis/{session_id}, and {prefix}/session/{id}/reset
// acts as a remote management surface for session reset. Entirely
// outside the core pipeline; publish failures are logged, never
// surfaced.
type Hub struct {
	cfg      HubConfig
	client   paho.Client
	resetter SessionResetter
	logger   *slog.Logger
}

func NewHub(cfg HubConfig, resetter SessionResetter, logger *slog.Logger) *Hub {
	return &Hub{cfg: cfg, resetter: resetter, logger: logger}
}

func (h *Hub) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(h.cfg.BrokerURL).
		SetClientID(h.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if h.cfg.Username != "" {
		opts.SetUsername(h.cfg.Username)
		opts.SetPassword(h.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		h.logger.Error("mqtt connection lost", "error", err)
	})

	h.client = paho.NewClient(opts)
	if token := h.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	if token := h.client.Subscribe(TopicSessionResetFilter(h.cfg.TopicPrefix), 1, h.handleReset); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	go func() {
		<-ctx.Done()
		h.client.Disconnect(100)
	}()

	return nil
}

func (h *Hub) handleReset(_ paho.Client, msg paho.Message) {
	sessionID, err := ParseSessionID(msg.Topic(), h.cfg.TopicPrefix)
	if err != nil {
		h.logger.Warn("skip invalid reset topic", "topic", msg.Topic(), "error", err)
		return
	}
	h.resetter.Reset(sessionID)
	h.logger.Info("session reset via mqtt", "session_id", sessionID)
}

// PublishAnalysis pushes one analysis summary to the broker.
// Fire-and-forget: a failed publish is logged and the request proceeds.
func (h *Hub) PublishAnalysis(res domain.AnalysisResult) {
	body, err := json.Marshal(res)
	if err != nil {
		h.logger.Warn("marshal analysis event failed", "error", err)
		return
	}
	topic := TopicAnalysis(h.cfg.TopicPrefix, res.SessionID)
	if token := h.client.Publish(topic, 0, false, body); token.Wait() && token.Error() != nil {
		h.logger.Warn("publish analysis event failed", "topic", topic, "error", token.Error())
	}
}
