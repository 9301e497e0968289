package events

import "testing"

func TestTopicAnalysis(t *testing.T) {
	got := TopicAnalysis("destek", "abc-123")
	if got != "destek/analysis/abc-123" {
		t.Fatalf("topic=%q, want destek/analysis/abc-123", got)
	}
}

func TestParseSessionID(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		prefix  string
		want    string
		wantErr bool
	}{
		{name: "valid", topic: "destek/session/abc-123/reset", prefix: "destek", want: "abc-123"},
		{name: "multi segment prefix", topic: "org/destek/session/s9/reset", prefix: "org/destek", want: "s9"},
		{name: "wrong prefix", topic: "other/session/abc/reset", prefix: "destek", wantErr: true},
		{name: "wrong action", topic: "destek/session/abc/pause", prefix: "destek", wantErr: true},
		{name: "missing segment", topic: "destek/session/reset", prefix: "destek", wantErr: true},
		{name: "empty session id", topic: "destek/session//reset", prefix: "destek", wantErr: true},
		{name: "analysis topic rejected", topic: "destek/analysis/abc", prefix: "destek", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSessionID(tt.topic, tt.prefix)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("err=nil, want parse failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSessionID: %v", err)
			}
			if got != tt.want {
				t.Fatalf("session=%q, want %q", got, tt.want)
			}
		})
	}
}
