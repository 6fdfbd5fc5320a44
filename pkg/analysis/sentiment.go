package analysis

import "strings"

// Sentiment labels produced by ScoreSentiment.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

var positiveTerms = []string{
	"growth",
	"improve",
	"improving",
	"surge",
	"strong",
	"beat",
	"record",
	"gain",
	"positive",
	"optimistic",
	"upbeat",
	"increase",
	"exceed",
	"sustainable",
	"sustainability",
	"expansion",
}

var negativeTerms = []string{
	"loss",
	"decline",
	"drop",
	"warning",
	"weak",
	"downturn",
	"concern",
	"miss",
	"lawsuit",
	"negative",
	"risk",
	"regulatory",
	"penalty",
	"fraud",
	"downgrade",
}

// ScoreSentiment counts lexicon term occurrences in text and returns a label
// with its score in [-1, 1]. A score above 0.2 is positive, below -0.2
// negative, anything else neutral. Text with no lexicon hits is neutral with
// score 0.
func ScoreSentiment(text string) (string, float64) {
	if text == "" {
		return SentimentNeutral, 0.0
	}
	lowered := strings.ToLower(text)

	posHits := 0
	for _, term := range positiveTerms {
		posHits += strings.Count(lowered, term)
	}
	negHits := 0
	for _, term := range negativeTerms {
		negHits += strings.Count(lowered, term)
	}

	total := posHits + negHits
	if total == 0 {
		return SentimentNeutral, 0.0
	}

	score := float64(posHits-negHits) / float64(total)
	switch {
	case score > 0.2:
		return SentimentPositive, score
	case score < -0.2:
		return SentimentNegative, score
	default:
		return SentimentNeutral, score
	}
}
