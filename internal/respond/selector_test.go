package respond

import (
	"errors"
	"strings"
	"testing"

	"destek/internal/domain"
	"destek/internal/session"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(map[Key][]string{
		{domain.IntentGreeting, domain.SentimentNeutral}: {"Merhaba!", "Hoş geldiniz!"},
		{domain.IntentComplaint, domain.SentimentNegative}: {
			"Şikayetinizi kayıt altına alıyorum.",
		},
		{domain.IntentComplaint, domain.SentimentNeutral}: {
			"Detayları paylaşır mısınız?",
		},
		{domain.IntentUnknown, domain.SentimentNeutral}: {
			"Sorunuzu anlayamadım.",
		},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestNewTableRequiresFallbackBucket(t *testing.T) {
	_, err := NewTable(map[Key][]string{
		{domain.IntentGreeting, domain.SentimentNeutral}: {"Merhaba!"},
	})
	if !errors.Is(err, ErrNoFallbackBucket) {
		t.Fatalf("err=%v, want ErrNoFallbackBucket", err)
	}
}

func TestNewTableDropsBlankCandidates(t *testing.T) {
	_, err := NewTable(map[Key][]string{
		{domain.IntentUnknown, domain.SentimentNeutral}: {"  ", ""},
	})
	if !errors.Is(err, ErrNoFallbackBucket) {
		t.Fatalf("err=%v, want ErrNoFallbackBucket when only blanks remain", err)
	}
}

func TestLookupFallbackChain(t *testing.T) {
	table := testTable(t)

	// Exact bucket.
	got := table.Lookup(domain.IntentComplaint, domain.SentimentNegative)
	if len(got) != 1 || !strings.HasPrefix(got[0], "Şikayetinizi") {
		t.Fatalf("got %v, want exact (complaint, negative) bucket", got)
	}

	// Missing sentiment falls back to the intent's neutral bucket.
	got = table.Lookup(domain.IntentComplaint, domain.SentimentPositive)
	if len(got) != 1 || got[0] != "Detayları paylaşır mısınız?" {
		t.Fatalf("got %v, want (complaint, neutral) fallback", got)
	}

	// Missing intent falls back to the unknown bucket.
	got = table.Lookup(domain.IntentRefund, domain.SentimentNeutral)
	if len(got) != 1 || got[0] != "Sorunuzu anlayamadım." {
		t.Fatalf("got %v, want unknown fallback", got)
	}
}

func TestSelectRotatesByTurnCount(t *testing.T) {
	s := NewSelector(testTable(t), Config{BotName: "Destek"})
	intent := domain.IntentResult{Label: domain.IntentGreeting, Confidence: 1}
	sentiment := domain.SentimentResult{Label: domain.SentimentNeutral, Score: 1}

	first, err := s.Select(intent, sentiment, session.State{TurnCount: 0})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	second, err := s.Select(intent, sentiment, session.State{TurnCount: 1})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if first == second {
		t.Fatalf("consecutive turns repeated %q", first)
	}
	third, err := s.Select(intent, sentiment, session.State{TurnCount: 2})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if third != first {
		t.Fatalf("rotation did not wrap: got %q, want %q", third, first)
	}
}

func TestSelectEmpathyPrefixOnNegativeComplaint(t *testing.T) {
	s := NewSelector(testTable(t), Config{
		BotName:         "Destek",
		EmpathyPrefixes: []string{"Anlıyorum, bu durum sizi rahatsız etmiş."},
	})
	got, err := s.Select(
		domain.IntentResult{Label: domain.IntentComplaint, Confidence: 0.9},
		domain.SentimentResult{Label: domain.SentimentNegative, Score: 0.8},
		session.State{},
	)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !strings.HasPrefix(got, "Anlıyorum,") {
		t.Fatalf("reply=%q, want empathy prefix", got)
	}
}

func TestSelectNoEmpathyPrefixOnNeutralComplaint(t *testing.T) {
	s := NewSelector(testTable(t), Config{
		BotName:         "Destek",
		EmpathyPrefixes: []string{"Anlıyorum."},
	})
	got, err := s.Select(
		domain.IntentResult{Label: domain.IntentComplaint, Confidence: 0.9},
		domain.SentimentResult{Label: domain.SentimentNeutral, Score: 1},
		session.State{},
	)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if strings.HasPrefix(got, "Anlıyorum.") {
		t.Fatalf("reply=%q, want no empathy prefix for neutral sentiment", got)
	}
}

func TestSelectFillsPlaceholders(t *testing.T) {
	table, err := NewTable(map[Key][]string{
		{domain.IntentGreeting, domain.SentimentNeutral}: {
			"Ben {bot_name}, önceki konunuz {last_intent} idi.",
		},
		{domain.IntentUnknown, domain.SentimentNeutral}: {"Anlayamadım."},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	s := NewSelector(table, Config{BotName: "Destek"})
	got, err := s.Select(
		domain.IntentResult{Label: domain.IntentGreeting, Confidence: 1},
		domain.SentimentResult{Label: domain.SentimentNeutral, Score: 1},
		session.State{LastIntent: domain.IntentRefund},
	)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := "Ben Destek, önceki konunuz refund idi."
	if got != want {
		t.Fatalf("reply=%q, want %q", got, want)
	}
}

func TestSelectUnknownPlaceholderBecomesEmpty(t *testing.T) {
	table, err := NewTable(map[Key][]string{
		{domain.IntentGreeting, domain.SentimentNeutral}: {"Merhaba {customer_name} nasılsınız?"},
		{domain.IntentUnknown, domain.SentimentNeutral}:  {"Anlayamadım."},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	s := NewSelector(table, Config{BotName: "Destek"})
	got, err := s.Select(
		domain.IntentResult{Label: domain.IntentGreeting, Confidence: 1},
		domain.SentimentResult{Label: domain.SentimentNeutral, Score: 1},
		session.State{},
	)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "Merhaba nasılsınız?" {
		t.Fatalf("reply=%q, want collapsed whitespace around empty slot", got)
	}
}
