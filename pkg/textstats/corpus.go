package textstats

import (
	"webcorpus/models"
)

type corpusDoc struct {
	name   string
	tokens map[string]struct{}
}

// Corpus accumulates token statistics across a batch of documents. All state
// is local to the instance; Report renders it into an immutable report value.
type Corpus struct {
	docs []corpusDoc

	wordFreq    map[string]int
	docFreq     map[string]int
	bigramFreq  map[string]int
	trigramFreq map[string]int

	totalWords    int
	totalWordLen  int
	sentenceCount int
	sentenceWords int
}

func NewCorpus() *Corpus {
	return &Corpus{
		wordFreq:    make(map[string]int),
		docFreq:     make(map[string]int),
		bigramFreq:  make(map[string]int),
		trigramFreq: make(map[string]int),
	}
}

// AddDocument tokenizes text and folds it into the corpus totals. Documents
// are identified by name in the similarity list, in the order they are added.
func (c *Corpus) AddDocument(name, text string) {
	words := WordsLower(text)
	sentences := Sentences(text)

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		c.wordFreq[w]++
		c.totalWordLen += runeLen(w)
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			c.docFreq[w]++
		}
	}
	c.totalWords += len(words)

	c.sentenceCount += len(sentences)
	for _, s := range sentences {
		c.sentenceWords += len(WordsLower(s))
	}

	for _, bg := range NGrams(words, 2) {
		c.bigramFreq[bg]++
	}
	for _, tg := range NGrams(words, 3) {
		c.trigramFreq[tg]++
	}

	c.docs = append(c.docs, corpusDoc{name: name, tokens: TokenSet(words)})
}

// DocumentsProcessed returns how many documents have been added.
func (c *Corpus) DocumentsProcessed() int {
	return len(c.docs)
}

// Report renders the accumulated state: the top-K rankings, the full pairwise
// similarity list in add order, and the readability summary. The caller owns
// the timestamp.
func (c *Corpus) Report(topWords, topNgrams int) *models.Report {
	report := &models.Report{
		DocumentsProcessed: len(c.docs),
		TotalWords:         c.totalWords,
		UniqueWords:        len(c.wordFreq),
		TopWords:           []models.WordEntry{},
		DocumentSimilarity: []models.SimilarityEntry{},
		TopBigrams:         []models.BigramEntry{},
		TopTrigrams:        []models.TrigramEntry{},
	}

	for _, tc := range RankTerms(c.wordFreq, topWords) {
		freq := 0.0
		if c.totalWords > 0 {
			freq = float64(tc.Count) / float64(c.totalWords)
		}
		report.TopWords = append(report.TopWords, models.WordEntry{
			Word:      tc.Term,
			Count:     tc.Count,
			Frequency: freq,
			Documents: c.docFreq[tc.Term],
		})
	}

	for i := 0; i < len(c.docs); i++ {
		for j := i + 1; j < len(c.docs); j++ {
			report.DocumentSimilarity = append(report.DocumentSimilarity, models.SimilarityEntry{
				Doc1:       c.docs[i].name,
				Doc2:       c.docs[j].name,
				Similarity: Jaccard(c.docs[i].tokens, c.docs[j].tokens),
			})
		}
	}

	for _, tc := range RankTerms(c.bigramFreq, topNgrams) {
		report.TopBigrams = append(report.TopBigrams, models.BigramEntry{Bigram: tc.Term, Count: tc.Count})
	}
	for _, tc := range RankTerms(c.trigramFreq, topNgrams) {
		report.TopTrigrams = append(report.TopTrigrams, models.TrigramEntry{Trigram: tc.Term, Count: tc.Count})
	}

	report.Readability = c.readability()
	return report
}

func (c *Corpus) readability() models.Readability {
	avgSentence := 0.0
	if c.sentenceCount > 0 {
		avgSentence = float64(c.sentenceWords) / float64(c.sentenceCount)
	}
	avgWord := 0.0
	if c.totalWords > 0 {
		avgWord = float64(c.totalWordLen) / float64(c.totalWords)
	}
	return models.Readability{
		AvgSentenceLength: avgSentence,
		AvgWordLength:     avgWord,
		ComplexityScore:   avgSentence * avgWord,
	}
}
