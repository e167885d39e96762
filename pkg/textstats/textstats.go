// Package textstats implements the tokenization and frequency algorithms
// shared by the extract and analyze stages: word and sentence tokenization,
// n-gram windows, Jaccard similarity, and deterministic top-K ranking.
package textstats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentRe = regexp.MustCompile(`[.!?]+`)
)

// Words returns the maximal runs of alphanumeric/underscore characters,
// Unicode-aware. The result is never nil.
func Words(text string) []string {
	words := wordRe.FindAllString(text, -1)
	if words == nil {
		return []string{}
	}
	return words
}

// WordsLower tokenizes the lowercased text.
func WordsLower(text string) []string {
	return Words(strings.ToLower(text))
}

// Sentences returns the non-empty segments produced by splitting on runs of
// '.', '!' and '?'.
func Sentences(text string) []string {
	out := []string{}
	for _, part := range sentRe.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AvgWordLength is the mean character length over the given words, 0.0 when
// there are none.
func AvgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	total := 0
	for _, w := range words {
		total += runeLen(w)
	}
	return float64(total) / float64(len(words))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// NGrams returns the contiguous n-word windows over words, joined by single
// spaces. A window only forms where n consecutive tokens exist.
func NGrams(words []string, n int) []string {
	out := []string{}
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}

// Jaccard computes intersection-over-union of the token sets a and b,
// 0.0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// TokenSet builds the deduplicated token set Jaccard operates on.
func TokenSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// TermCount is one ranked term with its raw count.
type TermCount struct {
	Term  string
	Count int
}

// RankTerms orders freq by descending count, ties broken by ascending
// lexicographic order of the term, and returns the first k entries.
func RankTerms(freq map[string]int, k int) []TermCount {
	ranked := make([]TermCount, 0, len(freq))
	for term, count := range freq {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})

	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
