package models

// Per-item outcome values used across all manifests.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// FetchResult records the outcome of one URL attempt. File is null for
// failures so consumers can distinguish "no artifact" from an empty name.
// Size is a pointer so a zero-byte success still carries the field while
// failures omit it entirely.
type FetchResult struct {
	URL    string  `json:"url"`
	File   *string `json:"file"`
	Size   *int64  `json:"size,omitempty"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
}

// FetchManifest is the fetch stage's completion marker. It is written exactly
// once, atomically, after every URL has been attempted.
type FetchManifest struct {
	Timestamp     string        `json:"timestamp"`
	URLsProcessed int           `json:"urls_processed"`
	Successful    int           `json:"successful"`
	Failed        int           `json:"failed"`
	Results       []FetchResult `json:"results"`
}

// ExtractResult records the outcome of extracting one raw artifact.
type ExtractResult struct {
	SourceFile string  `json:"source_file"`
	OutputFile *string `json:"output_file"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
}

// ExtractManifest is the extract stage's completion marker. Status and Error
// are set only for the fatal missing-input condition; per-item failures live
// in Results.
type ExtractManifest struct {
	Timestamp      string          `json:"timestamp"`
	Status         string          `json:"status,omitempty"`
	Error          string          `json:"error,omitempty"`
	FilesProcessed int             `json:"files_processed"`
	Successful     int             `json:"successful"`
	Failed         int             `json:"failed"`
	Results        []ExtractResult `json:"results"`
}
