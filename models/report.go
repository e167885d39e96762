package models

// WordEntry is one row of the global word ranking. Frequency is the share of
// the corpus token count; Documents is the number of documents the word
// appears in at least once.
type WordEntry struct {
	Word      string  `json:"word"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
	Documents int     `json:"documents"`
}

// BigramEntry is one row of the bigram ranking.
type BigramEntry struct {
	Bigram string `json:"bigram"`
	Count  int    `json:"count"`
}

// TrigramEntry is one row of the trigram ranking.
type TrigramEntry struct {
	Trigram string `json:"trigram"`
	Count   int    `json:"count"`
}

// SimilarityEntry is the Jaccard similarity of one unordered document pair.
type SimilarityEntry struct {
	Doc1       string  `json:"doc1"`
	Doc2       string  `json:"doc2"`
	Similarity float64 `json:"similarity"`
}

// Readability is the corpus complexity summary. The score is the product of
// average sentence length and average word length, kept as defined rather
// than replaced with a standard formula.
type Readability struct {
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	AvgWordLength     float64 `json:"avg_word_length"`
	ComplexityScore   float64 `json:"complexity_score"`
}

// Report is the terminal artifact of the analyze stage, produced exactly once
// per run.
type Report struct {
	ProcessingTimestamp string            `json:"processing_timestamp"`
	DocumentsProcessed  int               `json:"documents_processed"`
	TotalWords          int               `json:"total_words"`
	UniqueWords         int               `json:"unique_words"`
	TopWords            []WordEntry       `json:"top_100_words"`
	DocumentSimilarity  []SimilarityEntry `json:"document_similarity"`
	TopBigrams          []BigramEntry     `json:"top_bigrams"`
	TopTrigrams         []TrigramEntry    `json:"top_trigrams"`
	Readability         Readability       `json:"readability"`
	Error               string            `json:"error,omitempty"`
}
