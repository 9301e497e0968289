package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalizeTurkishCasing(t *testing.T) {
	n := New("tr")
	got := n.Normalize("İYİ GÜNLER")
	if got.Text != "iyi günler" {
		t.Fatalf("text=%q, want %q", got.Text, "iyi günler")
	}
}

func TestNormalizeDotlessI(t *testing.T) {
	n := New("tr")
	got := n.Normalize("KARGOM NEREDE")
	if got.Text != "kargom nerede" {
		t.Fatalf("text=%q, want %q", got.Text, "kargom nerede")
	}
}

func TestNormalizeStripsPunctuation(t *testing.T) {
	n := New("tr")
	got := n.Normalize("Siparişim nerede?!")
	want := []string{"siparişim", "nerede"}
	if !reflect.DeepEqual(got.Tokens, want) {
		t.Fatalf("tokens=%v, want %v", got.Tokens, want)
	}
}

func TestNormalizeFiltersStopwordsKeepsText(t *testing.T) {
	n := New("tr")
	got := n.Normalize("çok kötü bir hizmet")
	if got.Text != "çok kötü bir hizmet" {
		t.Fatalf("text=%q, want full word sequence", got.Text)
	}
	want := []string{"kötü", "hizmet"}
	if !reflect.DeepEqual(got.Tokens, want) {
		t.Fatalf("tokens=%v, want %v", got.Tokens, want)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := New("tr")
	got := n.Normalize("   \t ")
	if got.Text != "" || len(got.Tokens) != 0 {
		t.Fatalf("got %+v, want empty result", got)
	}
}

func TestNewFallsBackToTurkish(t *testing.T) {
	n := New("not-a-language")
	got := n.Normalize("İADE")
	if got.Text != "iade" {
		t.Fatalf("text=%q, want %q", got.Text, "iade")
	}
}
