package sentiment

import (
	"strings"

	"destek/internal/textnorm"
)

// Turkish polarity lexicon. Weights express how strongly a term pulls the
// message toward one pole; the sums are clamped to [-1,1].

var positiveTerms = map[string]float64{
	"teşekkür":     0.7,
	"teşekkürler":  0.7,
	"sağol":        0.6,
	"sağolun":      0.6,
	"harika":       0.9,
	"mükemmel":     0.9,
	"süper":        0.8,
	"memnun":       0.6,
	"memnunum":     0.7,
	"güzel":        0.6,
	"iyi":          0.4,
	"başarılı":     0.6,
	"hızlı":        0.4,
	"sevdim":       0.7,
	"beğendim":     0.7,
	"yardımcı":     0.4,
	"kolay":        0.4,
	"sorunsuz":     0.6,
	"kaliteli":     0.7,
	"muhteşem":     0.9,
}

var negativeTerms = map[string]float64{
	"kötü":        0.8,
	"berbat":      0.9,
	"rezalet":     0.9,
	"felaket":     0.9,
	"şikayet":     0.5,
	"şikayetim":   0.5,
	"sorun":       0.4,
	"problem":     0.4,
	"çalışmıyor":  0.6,
	"bozuk":       0.7,
	"bozuldu":     0.7,
	"gecikti":     0.5,
	"geç":         0.4,
	"yavaş":       0.5,
	"rahatsızım":  0.6,
	"rahatsız":    0.5,
	"kırık":       0.6,
	"hata":        0.4,
	"hatalı":      0.5,
	"mağdur":      0.7,
	"üzgünüm":     0.4,
	"korkunç":     0.8,
}

// Multi-word cues that single-token matching misses. Matched against the
// full normalized text.
var negativePhrases = map[string]float64{
	"memnun değilim":   0.8,
	"memnun kalmadım":  0.8,
	"hiç beğenmedim":   0.8,
	"çalışmıyor bile":  0.7,
	"geri istiyorum":   0.5,
}

var positivePhrases = map[string]float64{
	"çok memnun kaldım": 0.9,
	"teşekkür ederim":   0.7,
	"ellerinize sağlık": 0.8,
}

// Intensifier applied to the following polar term ("çok kötü").
const intensifierBoost = 1.5

// Polarity computes the lexicon polarity of normalized text in [-1,1].
// Pure function: identical input always yields the identical score, so
// sentiment analysis stays idempotent.
func Polarity(text textnorm.Normalized) float64 {
	if text.Text == "" {
		return 0
	}

	// A matched phrase consumes its words so "memnun değilim" does not
	// also count a positive "memnun" token.
	rest := text.Text
	sum := 0.0
	for phrase, w := range positivePhrases {
		if strings.Contains(rest, phrase) {
			sum += w
			rest = strings.ReplaceAll(rest, phrase, " ")
		}
	}
	for phrase, w := range negativePhrases {
		if strings.Contains(rest, phrase) {
			sum -= w
			rest = strings.ReplaceAll(rest, phrase, " ")
		}
	}

	boost := 1.0
	for _, word := range strings.Fields(rest) {
		if word == "çok" || word == "gerçekten" || word == "aşırı" {
			boost = intensifierBoost
			continue
		}
		if w, ok := positiveTerms[word]; ok {
			sum += w * boost
		} else if w, ok := negativeTerms[word]; ok {
			sum -= w * boost
		}
		boost = 1.0
	}

	return clamp(sum, -1, 1)
}
