// Package analysis provides deterministic text heuristics used to enrich
// aggregated articles: a frequency-based extractive summarizer and a
// lexicon-based sentiment scorer.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxSentences is the summary length used when no explicit target is given.
const DefaultMaxSentences = 2

var wordRe = regexp.MustCompile(`[A-Za-z']+`)

// Summarize returns up to maxSentences sentences from text, chosen by mean
// normalized term frequency but emitted in their original order. Text that is
// already short enough is returned verbatim, joined on single spaces. Empty
// input yields an empty summary.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	scores := scoreSentences(sentences)
	ranked := make([]int, len(sentences))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	top := append([]int(nil), ranked[:maxSentences]...)
	sort.Ints(top)

	selected := make([]string, 0, len(top))
	for _, idx := range top {
		selected = append(selected, sentences[idx])
	}
	return strings.Join(selected, " ")
}

// splitSentences breaks text on terminal punctuation followed by whitespace.
func splitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func scoreSentences(sentences []string) map[int]float64 {
	freq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range wordRe.FindAllString(sentence, -1) {
			freq[strings.ToLower(word)]++
		}
	}
	if len(freq) == 0 {
		return map[int]float64{}
	}

	maxFreq := 0
	for _, count := range freq {
		if count > maxFreq {
			maxFreq = count
		}
	}

	scores := make(map[int]float64, len(sentences))
	for idx, sentence := range sentences {
		tokens := wordRe.FindAllString(sentence, -1)
		if len(tokens) == 0 {
			continue
		}
		var sum float64
		for _, token := range tokens {
			sum += float64(freq[strings.ToLower(token)]) / float64(maxFreq)
		}
		scores[idx] = sum / float64(len(tokens))
	}
	return scores
}
