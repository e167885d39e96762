package arxiv

import (
	"regexp"
	"sort"
	"unicode"

	"webcorpus/internal/common"
	"webcorpus/pkg/stopwords"
	"webcorpus/pkg/textstats"
)

var hyphenTermRe = regexp.MustCompile(`\b[\p{L}\p{N}_]+(?:-[\p{L}\p{N}_]+)+\b`)

// TopWord is one entry of a per-abstract keyword ranking.
type TopWord struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// AbstractStats summarizes one abstract's text.
type AbstractStats struct {
	TotalWords            int       `json:"total_words"`
	UniqueWords           int       `json:"unique_words"`
	Top20Words            []TopWord `json:"top_20_words"`
	TotalSentences        int       `json:"total_sentences"`
	AvgWordsPerSentence   float64   `json:"avg_words_per_sentence"`
	LongestSentenceWords  int       `json:"longest_sentence_words"`
	ShortestSentenceWords int       `json:"shortest_sentence_words"`
	AvgWordLength         float64   `json:"avg_word_length"`
}

// AnalyzeAbstract computes the per-paper statistics with the same
// tokenization rules the pipeline uses.
func AnalyzeAbstract(abstract string) AbstractStats {
	words := textstats.WordsLower(abstract)

	unique := map[string]struct{}{}
	freq := map[string]int{}
	for _, w := range words {
		unique[w] = struct{}{}
		if !stopwords.Contains(w) {
			freq[w]++
		}
	}

	top := []TopWord{}
	for _, tc := range textstats.RankTerms(freq, 20) {
		top = append(top, TopWord{Word: tc.Term, Frequency: tc.Count})
	}

	stats := AbstractStats{
		TotalWords:    len(words),
		UniqueWords:   len(unique),
		Top20Words:    top,
		AvgWordLength: textstats.AvgWordLength(words),
	}

	sentences := textstats.Sentences(abstract)
	stats.TotalSentences = len(sentences)
	if len(sentences) > 0 {
		totalWords := 0
		longest, shortest := -1, -1
		for _, s := range sentences {
			wc := len(textstats.WordsLower(s))
			totalWords += wc
			if longest < 0 || wc > longest {
				longest = wc
			}
			if shortest < 0 || wc < shortest {
				shortest = wc
			}
		}
		stats.AvgWordsPerSentence = float64(totalWords) / float64(len(sentences))
		stats.LongestSentenceWords = longest
		stats.ShortestSentenceWords = shortest
	}

	return stats
}

// CorpusWord is one entry of the corpus-wide keyword ranking.
type CorpusWord struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
	Documents int    `json:"documents"`
}

// CorpusStats aggregates abstract sizes across all papers.
type CorpusStats struct {
	TotalAbstracts        int     `json:"total_abstracts"`
	TotalWords            int     `json:"total_words"`
	UniqueWordsGlobal     int     `json:"unique_words_global"`
	AvgAbstractLength     float64 `json:"avg_abstract_length"`
	LongestAbstractWords  int     `json:"longest_abstract_words"`
	ShortestAbstractWords int     `json:"shortest_abstract_words"`
}

// TechnicalTerms collects sorted unique tokens with technical shapes.
type TechnicalTerms struct {
	UppercaseTerms  []string `json:"uppercase_terms"`
	NumericTerms    []string `json:"numeric_terms"`
	HyphenatedTerms []string `json:"hyphenated_terms"`
}

// CorpusAnalysis is the terminal output of one arxiv run.
type CorpusAnalysis struct {
	Query                string         `json:"query"`
	PapersProcessed      int            `json:"papers_processed"`
	ProcessingTimestamp  string         `json:"processing_timestamp"`
	CorpusStats          CorpusStats    `json:"corpus_stats"`
	Top50Words           []CorpusWord   `json:"top_50_words"`
	TechnicalTerms       TechnicalTerms `json:"technical_terms"`
	CategoryDistribution map[string]int `json:"category_distribution"`
}

// BuildCorpusAnalysis folds all paper abstracts into corpus-level statistics.
func BuildCorpusAnalysis(papers []Paper, query string) CorpusAnalysis {
	totalWords := 0
	longest, shortest := -1, -1

	globalUnique := map[string]struct{}{}
	wordFreq := map[string]int{}
	docFreq := map[string]int{}

	uppercaseTerms := map[string]struct{}{}
	numericTerms := map[string]struct{}{}
	hyphenatedTerms := map[string]struct{}{}

	categoryDist := map[string]int{}

	for _, paper := range papers {
		tokens := textstats.WordsLower(paper.Abstract)
		totalWords += len(tokens)
		if longest < 0 || len(tokens) > longest {
			longest = len(tokens)
		}
		if shortest < 0 || len(tokens) < shortest {
			shortest = len(tokens)
		}

		docSeen := map[string]struct{}{}
		for _, w := range tokens {
			globalUnique[w] = struct{}{}
			if !stopwords.Contains(w) {
				wordFreq[w]++
				docSeen[w] = struct{}{}
			}
		}
		for w := range docSeen {
			docFreq[w]++
		}

		for _, tok := range textstats.Words(paper.Abstract) {
			if isAllUppercase(tok) {
				uppercaseTerms[tok] = struct{}{}
			}
			if hasDigit(tok) {
				numericTerms[tok] = struct{}{}
			}
		}
		for _, term := range hyphenTermRe.FindAllString(paper.Abstract, -1) {
			hyphenatedTerms[term] = struct{}{}
		}

		for _, cat := range paper.Categories {
			categoryDist[cat]++
		}
	}

	stats := CorpusStats{
		TotalAbstracts:    len(papers),
		TotalWords:        totalWords,
		UniqueWordsGlobal: len(globalUnique),
	}
	if len(papers) > 0 {
		stats.AvgAbstractLength = float64(totalWords) / float64(len(papers))
		stats.LongestAbstractWords = longest
		stats.ShortestAbstractWords = shortest
	}

	top50 := []CorpusWord{}
	for _, tc := range textstats.RankTerms(wordFreq, 50) {
		top50 = append(top50, CorpusWord{
			Word:      tc.Term,
			Frequency: tc.Count,
			Documents: docFreq[tc.Term],
		})
	}

	return CorpusAnalysis{
		Query:               query,
		PapersProcessed:     len(papers),
		ProcessingTimestamp: common.Now(),
		CorpusStats:         stats,
		Top50Words:          top50,
		TechnicalTerms: TechnicalTerms{
			UppercaseTerms:  sortedKeys(uppercaseTerms),
			NumericTerms:    sortedKeys(numericTerms),
			HyphenatedTerms: sortedKeys(hyphenatedTerms),
		},
		CategoryDistribution: categoryDist,
	}
}

// isAllUppercase reports whether the token has at least one uppercase letter
// and no lowercase letters, the shape of acronyms like BERT or GPU.
func isAllUppercase(tok string) bool {
	hasUpper := false
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func hasDigit(tok string) bool {
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
