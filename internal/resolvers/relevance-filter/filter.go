// Package relevancefilter condenses a block of content to the sentences that
// mention the query the most.
package relevancefilter

import (
	"regexp"
	"sort"
	"strings"

	"craft-assistant/internal/models"
)

// DefaultMaxSentences is used when a caller passes a non-positive limit.
const DefaultMaxSentences = 3

// A sentence ends at '.', '?' or '!' followed by whitespace, Unicode
// separators such as NBSP and the ideographic space included.
var sentenceBoundary = regexp.MustCompile(`[.?!][\s\v\p{Z}\x{85}\x{1C}-\x{1F}]+`)

// SplitSentences splits trimmed content into sentences. Terminal punctuation
// stays with its sentence; the whitespace after it is dropped.
func SplitSentences(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(content, -1) {
		sentences = append(sentences, content[start:loc[0]+1])
		start = loc[1]
	}
	return append(sentences, content[start:])
}

// QueryWords lowercases and whitespace-tokenizes query, dropping repeats.
func QueryWords(query string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// Rank scores every sentence containing at least one word and orders them by
// score, highest first. Equal scores keep their original order.
func Rank(sentences, words []string) []models.RankedSentence {
	var ranked []models.RankedSentence
	for i, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, models.RankedSentence{Text: s, Score: score, Position: i})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Filter returns up to maxSentences of the most relevant sentences joined by
// single spaces. With no relevant sentence it returns the leading sentences
// instead, so the result is empty only when content is.
func Filter(content, query string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	sentences := SplitSentences(content)
	if len(sentences) == 0 {
		return ""
	}

	ranked := Rank(sentences, QueryWords(query))
	if len(ranked) == 0 {
		return strings.Join(sentences[:min(maxSentences, len(sentences))], " ")
	}

	top := make([]string, 0, maxSentences)
	for _, r := range ranked[:min(maxSentences, len(ranked))] {
		top = append(top, r.Text)
	}
	return strings.Join(top, " ")
}
