// Package analyze implements the terminal pipeline stage: it waits for the
// extract manifest, re-scans the structured-document directory, accumulates
// corpus-wide statistics, and writes the final report.
package analyze

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"webcorpus/internal/common"
	"webcorpus/models"
	"webcorpus/pkg/marker"
	"webcorpus/pkg/storage"
	"webcorpus/pkg/textstats"
)

// ErrMissingInput marks the fatal condition of an absent processed directory.
// An all-zero report is still written before the stage exits non-zero.
var ErrMissingInput = errors.New("missing processed directory")

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %v", err), 2)
	}

	logger.Info("analyze stage starting", "processed_dir", cfg.ProcessedDir)
	if err := Run(cfg, logger); err != nil {
		if errors.Is(err, ErrMissingInput) {
			return cli.Exit(err.Error(), 1)
		}
		return cli.Exit(err.Error(), 2)
	}
	return nil
}

// Run executes the whole stage. Like extraction, analysis trusts the
// filesystem rather than the upstream manifest: it processes every document
// physically present, in lexicographic order.
func Run(cfg *models.Config, logger *slog.Logger) error {
	marker.Wait(cfg.ExtractMarkerPath(), cfg.PollInterval.Std(), logger)

	if err := os.MkdirAll(cfg.AnalysisDir, 0750); err != nil {
		return fmt.Errorf("failed to create analysis directory: %w", err)
	}

	if !storage.Exists(cfg.ProcessedDir) {
		err := fmt.Errorf("%w: %s", ErrMissingInput, cfg.ProcessedDir)
		logger.Error("fatal precondition", "error", err.Error())
		report := textstats.NewCorpus().Report(cfg.TopWords, cfg.TopNgrams)
		report.ProcessingTimestamp = common.Now()
		report.Error = err.Error()
		if werr := storage.WriteJSONAtomic(cfg.ReportPath(), report); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
		return err
	}

	names, err := scanProcessedDir(cfg.ProcessedDir)
	if err != nil {
		return err
	}

	corpus := textstats.NewCorpus()
	for _, name := range names {
		var doc models.Document
		if err := storage.ReadJSON(filepath.Join(cfg.ProcessedDir, name), &doc); err != nil {
			logger.Warn("skipping unreadable document", "file", name, "error", err.Error())
			continue
		}
		logger.Info("analyzing", "file", name, "words", doc.Statistics.WordCount)
		corpus.AddDocument(name, doc.Text)
	}

	logger.Info("corpus assembled", "documents", corpus.DocumentsProcessed(), "files_scanned", len(names))

	report := corpus.Report(cfg.TopWords, cfg.TopNgrams)
	report.ProcessingTimestamp = common.Now()

	if err := storage.WriteJSONAtomic(cfg.ReportPath(), report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("analyze stage complete",
		"documents", report.DocumentsProcessed,
		"total_words", report.TotalWords,
		"unique_words", report.UniqueWords)
	return nil
}

func scanProcessedDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan processed directory: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), models.DocExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
