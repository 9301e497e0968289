package domain

import "time"

// IntentLabel is the categorical purpose of a customer message.
type IntentLabel string

const (
	IntentGreeting         IntentLabel = "greeting"
	IntentProductInfo      IntentLabel = "product_info"
	IntentOrderStatus      IntentLabel = "order_status"
	IntentRefund           IntentLabel = "refund"
	IntentTechnicalSupport IntentLabel = "technical_support"
	IntentComplaint        IntentLabel = "complaint"
	// IntentUnknown is the mandatory fallback label when no classifier
	// score clears the configured confidence threshold.
	IntentUnknown IntentLabel = "unknown"
)

// IntentOrder is the closed set of intent labels in canonical order.
// Intent data tags must come from this set, and classifier tie-breaks
// resolve to the label that appears first here.
func IntentOrder() []IntentLabel {
	return []IntentLabel{
		IntentGreeting,
		IntentProductInfo,
		IntentOrderStatus,
		IntentRefund,
		IntentTechnicalSupport,
		IntentComplaint,
		IntentUnknown,
	}
}

// SentimentLabel is the emotional valence of a message.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Message is one inbound customer message. Immutable once created.
type Message struct {
	SessionID  string
	Text       string
	ReceivedAt time.Time
}

// IntentResult carries the classified intent and its raw confidence.
// Confidence stays in [0,1] and is reported even when the label has been
// demoted to unknown.
type IntentResult struct {
	Label      IntentLabel `json:"label"`
	Confidence float64     `json:"confidence"`
}

// SentimentResult carries the sentiment label and its score in [0,1].
// Degraded marks results produced after an analyzer failure; callers may
// still use them.
type SentimentResult struct {
	Label    SentimentLabel `json:"label"`
	Score    float64        `json:"score"`
	Degraded bool           `json:"degraded,omitempty"`
}

// AnalysisResult is the only value returned across the pipeline boundary.
type AnalysisResult struct {
	SessionID string          `json:"session_id"`
	Reply     string          `json:"reply"`
	Intent    IntentResult    `json:"intent"`
	Sentiment SentimentResult `json:"sentiment"`
	TurnCount int             `json:"turn_count"`
}

// HTTP payloads

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Text             string          `json:"text"`
	Intent           IntentLabel     `json:"intent"`
	IntentConfidence float64         `json:"intent_confidence"`
	Sentiment        SentimentResult `json:"sentiment"`
	TurnCount        int             `json:"turn_count"`
	SessionID        string          `json:"session_id"`
	BotName          string          `json:"bot_name,omitempty"`
	Timestamp        string          `json:"timestamp"`
}

type BotInfo struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Language         string   `json:"language"`
	SupportedIntents []string `json:"supported_intents"`
	Features         []string `json:"features"`
}
