package events

import (
	"fmt"
	"strings"
)

func TopicAnalysis(prefix, sessionID string) string {
	return fmt.Sprintf("%s/analysis/%s", prefix, sessionID)
}

func TopicSessionResetFilter(prefix string) string {
	return fmt.Sprintf("%s/session/+/reset", prefix)
}

// expected: {prefix}/session/{sessionId}/reset
func ParseSessionID(topic, prefix string) (string, error) {
	parts := strings.Split(topic, "/")
	prefixParts := strings.Split(prefix, "/")
	if len(parts) != len(prefixParts)+3 {
		return "", fmt.Errorf("invalid topic: %s", topic)
	}
	for i, p := range prefixParts {
		if parts[i] != p {
			return "", fmt.Errorf("topic prefix mismatch: %s", topic)
		}
	}
	if parts[len(prefixParts)] != "session" || parts[len(parts)-1] != "reset" {
		return "", fmt.Errorf("invalid topic pattern: %s", topic)
	}
	sessionID := parts[len(prefixParts)+1]
	if sessionID == "" {
		return "", fmt.Errorf("empty session id in topic: %s", topic)
	}
	return sessionID, nil
}
