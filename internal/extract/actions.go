// Package extract implements the second pipeline stage: it waits for the
// fetch manifest, re-scans the raw-artifact directory, strips markup into
// structured documents, and publishes the extract manifest.
package extract

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
	"webcorpus/pkg/htmltext"
	"webcorpus/pkg/langid"
	"webcorpus/pkg/marker"
	"webcorpus/pkg/storage"
	"webcorpus/pkg/textstats"
)

// ErrMissingInput marks the fatal condition of an absent raw directory. The
// manifest is still published before the stage exits non-zero so downstream
// waiters are never left hanging.
var ErrMissingInput = errors.New("missing raw directory")

func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %v", err), 2)
	}

	logger.Info("extract stage starting", "raw_dir", cfg.RawDir)
	if err := Run(cfg, logger); err != nil {
		if errors.Is(err, ErrMissingInput) {
			return cli.Exit(err.Error(), 1)
		}
		return cli.Exit(err.Error(), 2)
	}
	return nil
}

// Run executes the whole stage. The raw directory is re-scanned rather than
// trusting the fetch manifest's list: extraction operates over whatever is
// physically present, in lexicographic order.
func Run(cfg *models.Config, logger *slog.Logger) error {
	marker.Wait(cfg.FetchMarkerPath(), cfg.PollInterval.Std(), logger)

	if err := os.MkdirAll(cfg.ProcessedDir, 0750); err != nil {
		return fmt.Errorf("failed to create processed directory: %w", err)
	}
	if err := os.MkdirAll(cfg.StatusDir, 0750); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	if !storage.Exists(cfg.RawDir) {
		err := fmt.Errorf("%w: %s", ErrMissingInput, cfg.RawDir)
		logger.Error("fatal precondition", "error", err.Error())
		m := models.ExtractManifest{
			Timestamp: common.Now(),
			Status:    models.StatusFailed,
			Error:     err.Error(),
			Results:   []models.ExtractResult{},
		}
		if perr := marker.Publish(cfg.ExtractMarkerPath(), m); perr != nil {
			return fmt.Errorf("failed to publish extract manifest: %w", perr)
		}
		return err
	}

	names, err := scanRawDir(cfg.RawDir)
	if err != nil {
		return err
	}

	detector := langid.New()

	manifest := models.ExtractManifest{Results: []models.ExtractResult{}}
	for _, name := range names {
		logger.Info("extracting", "source", name)

		outName := strings.TrimSuffix(name, filepath.Ext(name)) + models.DocExt
		if err := extractOne(cfg, detector, name, outName); err != nil {
			manifest.Failed++
			manifest.Results = append(manifest.Results, models.ExtractResult{
				SourceFile: name,
				OutputFile: nil,
				Status:     models.StatusFailed,
				Error:      err.Error(),
			})
			logger.Info("extraction failed", "source", name, "error", err.Error())
			continue
		}

		manifest.Successful++
		manifest.Results = append(manifest.Results, models.ExtractResult{
			SourceFile: name,
			OutputFile: &outName,
			Status:     models.StatusSuccess,
		})
	}

	manifest.FilesProcessed = len(names)
	manifest.Timestamp = common.Now()

	if err := marker.Publish(cfg.ExtractMarkerPath(), manifest); err != nil {
		return fmt.Errorf("failed to publish extract manifest: %w", err)
	}
	logger.Info("extract stage complete",
		"processed", manifest.FilesProcessed,
		"successful", manifest.Successful,
		"failed", manifest.Failed)
	return nil
}

// scanRawDir lists raw artifacts by extension, sorted lexicographically for
// deterministic processing order.
func scanRawDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan raw directory: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), models.RawExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// extractOne turns one raw artifact into a structured document on disk.
func extractOne(cfg *models.Config, detector *langid.Detector, name, outName string) error {
	raw, err := os.ReadFile(filepath.Join(cfg.RawDir, name))
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	html := htmltext.Decode(raw)
	text, links, images := htmltext.Strip(html)
	words := textstats.Words(text)

	doc := models.Document{
		SourceFile: name,
		Text:       text,
		Statistics: models.DocumentStats{
			WordCount:      len(words),
			SentenceCount:  len(textstats.Sentences(text)),
			ParagraphCount: htmltext.CountParagraphs(html, text),
			AvgWordLength:  textstats.AvgWordLength(words),
		},
		Links:       links,
		Images:      images,
		Language:    detector.Detect(text),
		ProcessedAt: common.Now(),
	}

	return storage.WriteJSON(filepath.Join(cfg.ProcessedDir, outName), doc)
}
