package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"destek/internal/domain"
)

// Client calls a remote intent model over HTTP. It satisfies Model; the
// classifier treats any error as a signal to degrade to keyword matching.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) Classify(ctx context.Context, text string) (domain.IntentResult, error) {
	if !c.Enabled() {
		return domain.IntentResult{}, fmt.Errorf("intent service is not configured")
	}
	payload := map[string]string{"text": strings.TrimSpace(text)}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/intents/classify", bytes.NewReader(body))
	if err != nil {
		return domain.IntentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.IntentResult{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return domain.IntentResult{}, fmt.Errorf("intent service status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return domain.IntentResult{}, err
	}
	return domain.IntentResult{
		Label:      domain.IntentLabel(strings.TrimSpace(out.Intent)),
		Confidence: out.Confidence,
	}, nil
}
