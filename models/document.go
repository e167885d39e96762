package models

// DocumentStats holds per-document structural statistics computed during
// extraction.
type DocumentStats struct {
	WordCount      int     `json:"word_count"`
	SentenceCount  int     `json:"sentence_count"`
	ParagraphCount int     `json:"paragraph_count"`
	AvgWordLength  float64 `json:"avg_word_length"`
}

// Document is the structured record produced for one raw artifact. Documents
// are immutable once written; reprocessing produces a new document.
type Document struct {
	SourceFile  string        `json:"source_file"`
	Text        string        `json:"text"`
	Statistics  DocumentStats `json:"statistics"`
	Links       []string      `json:"links"`
	Images      []string      `json:"images"`
	Language    string        `json:"language,omitempty"`
	ProcessedAt string        `json:"processed_at"`
}
