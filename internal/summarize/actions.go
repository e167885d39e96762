// Package summarize implements the self-contained fetch-and-summarize
// utility: it retrieves a list of URLs in a single process, records one
// response record per URL, and writes aggregate summary statistics. It shares
// tokenization ideas with the pipeline but none of its coordination.
package summarize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"webcorpus/internal/common"
	"webcorpus/pkg/fetcher"
	"webcorpus/pkg/storage"
)

const requestTimeout = 10 * time.Second

func SummarizeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	inputFile := c.String("input")
	outputDir := c.String("output")

	if err := Run(inputFile, outputDir, logger); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return nil
}

// Run fetches every URL in the input list and writes responses.json,
// summary.json and errors.log into outputDir.
func Run(inputFile, outputDir string, logger *slog.Logger) error {
	if err := ensureDir(outputDir); err != nil {
		return err
	}

	urls, err := common.ReadURLList(inputFile)
	if err != nil {
		return err
	}

	responsesPath := filepath.Join(outputDir, "responses.json")
	summaryPath := filepath.Join(outputDir, "summary.json")
	errorsPath := filepath.Join(outputDir, "errors.log")

	// Each run starts a fresh error log.
	_ = os.Remove(errorsPath)

	start := common.Now()
	f := fetcher.New(requestTimeout)

	records := make([]Record, 0, len(urls))
	for _, url := range urls {
		logger.Info("fetching", "url", url)
		rec := fetchURL(f, url)
		records = append(records, rec)

		if rec.Error != nil {
			if logErr := appendErrorLine(errorsPath, url, *rec.Error); logErr != nil {
				logger.Warn("failed to append error log", "error", logErr.Error())
			}
		}
	}
	end := common.Now()

	if err := storage.WriteJSON(responsesPath, records); err != nil {
		return err
	}
	if err := storage.WriteJSON(summaryPath, Summarize(records, start, end)); err != nil {
		return err
	}

	logger.Info("summarize complete", "urls", len(records), "output", outputDir)
	return nil
}

// ensureDir creates the output directory, rejecting a path that exists but is
// not a directory.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path exists but is not a directory: %s", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func appendErrorLine(path, url, message string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s %s: %s\n", common.Now(), url, message)
	return err
}
