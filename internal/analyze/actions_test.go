package analyze

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"webcorpus/models"
	"webcorpus/pkg/storage"
)

func testConfig(t *testing.T) *models.Config {
	t.Helper()
	root := t.TempDir()
	cfg := models.DefaultConfig()
	cfg.ProcessedDir = filepath.Join(root, "processed")
	cfg.StatusDir = filepath.Join(root, "status")
	cfg.AnalysisDir = filepath.Join(root, "analysis")
	cfg.PollInterval = models.Duration(10 * time.Millisecond)
	return cfg
}

func publishExtractMarker(t *testing.T, cfg *models.Config) {
	t.Helper()
	if err := os.MkdirAll(cfg.StatusDir, 0750); err != nil {
		t.Fatal(err)
	}
	m := models.ExtractManifest{Timestamp: "2026-01-01T00:00:00Z", Results: []models.ExtractResult{}}
	if err := storage.WriteJSONAtomic(cfg.ExtractMarkerPath(), m); err != nil {
		t.Fatal(err)
	}
}

func writeDocument(t *testing.T, cfg *models.Config, name, text string) {
	t.Helper()
	if err := os.MkdirAll(cfg.ProcessedDir, 0750); err != nil {
		t.Fatal(err)
	}
	doc := models.Document{SourceFile: name, Text: text, ProcessedAt: "2026-01-01T00:00:00Z"}
	if err := storage.WriteJSON(filepath.Join(cfg.ProcessedDir, name), doc); err != nil {
		t.Fatal(err)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunBuildsReport(t *testing.T) {
	cfg := testConfig(t)
	publishExtractMarker(t, cfg)
	writeDocument(t, cfg, "page_1.json", "alpha beta gamma.")
	writeDocument(t, cfg, "page_2.json", "beta gamma delta.")

	if err := Run(cfg, discardLogger()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var r models.Report
	if err := storage.ReadJSON(cfg.ReportPath(), &r); err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if r.DocumentsProcessed != 2 {
		t.Errorf("documents_processed = %d, want 2", r.DocumentsProcessed)
	}
	if r.TotalWords != 6 {
		t.Errorf("total_words = %d, want 6", r.TotalWords)
	}
	if r.UniqueWords != 4 {
		t.Errorf("unique_words = %d, want 4", r.UniqueWords)
	}
	if r.ProcessingTimestamp == "" {
		t.Error("processing_timestamp is empty")
	}

	// Ties broken alphabetically, higher counts first.
	if len(r.TopWords) != 4 {
		t.Fatalf("top words = %d, want 4", len(r.TopWords))
	}
	if r.TopWords[0].Word != "beta" || r.TopWords[1].Word != "gamma" {
		t.Errorf("top two = %q, %q", r.TopWords[0].Word, r.TopWords[1].Word)
	}
	if r.TopWords[2].Word != "alpha" || r.TopWords[3].Word != "delta" {
		t.Errorf("tail two = %q, %q", r.TopWords[2].Word, r.TopWords[3].Word)
	}
	if r.TopWords[0].Count != 2 || r.TopWords[0].Documents != 2 {
		t.Errorf("beta entry = %+v", r.TopWords[0])
	}

	// {alpha,beta,gamma} vs {beta,gamma,delta}: 2 shared of 4 total.
	if len(r.DocumentSimilarity) != 1 {
		t.Fatalf("similarity pairs = %d, want 1", len(r.DocumentSimilarity))
	}
	sim := r.DocumentSimilarity[0]
	if sim.Doc1 != "page_1.json" || sim.Doc2 != "page_2.json" {
		t.Errorf("pair = %q, %q", sim.Doc1, sim.Doc2)
	}
	if sim.Similarity != 0.5 {
		t.Errorf("similarity = %v, want 0.5", sim.Similarity)
	}

	if r.Readability.ComplexityScore <= 0 {
		t.Errorf("complexity = %v", r.Readability.ComplexityScore)
	}
}

func TestRunNoDocuments(t *testing.T) {
	cfg := testConfig(t)
	publishExtractMarker(t, cfg)
	if err := os.MkdirAll(cfg.ProcessedDir, 0750); err != nil {
		t.Fatal(err)
	}

	if err := Run(cfg, discardLogger()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var r models.Report
	if err := storage.ReadJSON(cfg.ReportPath(), &r); err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if r.DocumentsProcessed != 0 || r.TotalWords != 0 {
		t.Errorf("report = %+v", r)
	}
	if r.TopWords == nil || r.DocumentSimilarity == nil || r.TopBigrams == nil || r.TopTrigrams == nil {
		t.Error("report slices must be empty, not absent")
	}
	if r.Error != "" {
		t.Errorf("error = %q", r.Error)
	}
}

func TestRunMissingProcessedDir(t *testing.T) {
	cfg := testConfig(t)
	publishExtractMarker(t, cfg)

	err := Run(cfg, discardLogger())
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Run() error = %v, want ErrMissingInput", err)
	}

	// An all-zero report is still written on the fatal path.
	var r models.Report
	if err := storage.ReadJSON(cfg.ReportPath(), &r); err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if r.DocumentsProcessed != 0 {
		t.Errorf("documents_processed = %d, want 0", r.DocumentsProcessed)
	}
	if r.Error == "" {
		t.Error("report error is empty")
	}
}

func TestRunSkipsUnreadableDocument(t *testing.T) {
	cfg := testConfig(t)
	publishExtractMarker(t, cfg)
	writeDocument(t, cfg, "page_1.json", "alpha beta.")
	if err := os.WriteFile(filepath.Join(cfg.ProcessedDir, "page_2.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(cfg, discardLogger()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var r models.Report
	if err := storage.ReadJSON(cfg.ReportPath(), &r); err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if r.DocumentsProcessed != 1 {
		t.Errorf("documents_processed = %d, want 1", r.DocumentsProcessed)
	}
}
