package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalized is the cleaned, tokenized form of a raw message. Text keeps
// every word after lowercasing and punctuation stripping; Tokens
// additionally drops function words so keyword matching sees content
// words only. Derived per call, never persisted.
type Normalized struct {
	Text   string
	Tokens []string
}

// Function words that carry no intent signal. Filtered from Tokens but
// kept in Text, where the sentiment scorer still needs intensifiers.
var stopwords = map[string]struct{}{
	"bir": {}, "bu": {}, "şu": {}, "ve": {}, "veya": {}, "ama": {},
	"ile": {}, "için": {}, "de": {}, "da": {}, "ki": {}, "mi": {},
	"mı": {}, "mu": {}, "mü": {}, "çok": {}, "ben": {}, "sen": {},
	"biz": {}, "siz": {}, "lütfen": {}, "acaba": {},
}

// Normalizer lowercases with the configured language's casing rules
// (Turkish İ→i, I→ı), strips punctuation while preserving diacritics,
// and tokenizes on whitespace. Stateless apart from the language tag.
type Normalizer struct {
	lang language.Tag
}

func New(langCode string) *Normalizer {
	tag, err := language.Parse(langCode)
	if err != nil {
		tag = language.Turkish
	}
	return &Normalizer{lang: tag}
}

// Normalize never fails; empty input yields an empty token slice.
func (n *Normalizer) Normalize(raw string) Normalized {
	// A Caser is stateful, so build one per call.
	lowered := cases.Lower(n.lang).String(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		tokens = append(tokens, w)
	}

	return Normalized{
		Text:   strings.Join(words, " "),
		Tokens: tokens,
	}
}
