// Package fetch implements the first pipeline stage: it waits for the URL
// list, retrieves each URL in input order, persists one raw artifact per
// success, and publishes the fetch manifest as its completion marker.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"webcorpus/internal/common"
	"webcorpus/models"
	"webcorpus/pkg/fetcher"
	"webcorpus/pkg/marker"
)

func FetchAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %v", err), 2)
	}

	logger.Info("fetch stage starting", "input", cfg.InputFile)
	if err := Run(cfg, logger); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return nil
}

// Run executes the whole stage: wait for the input list, attempt every URL
// once, then publish the manifest. Per-item failures never abort the run; an
// error return means a fatal condition (unusable directories, unreadable
// input) and no manifest.
func Run(cfg *models.Config, logger *slog.Logger) error {
	marker.Wait(cfg.InputFile, cfg.PollInterval.Std(), logger)

	urls, err := common.ReadURLList(cfg.InputFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.RawDir, 0750); err != nil {
		return fmt.Errorf("failed to create raw directory: %w", err)
	}
	if err := os.MkdirAll(cfg.StatusDir, 0750); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	f := fetcher.New(cfg.FetchTimeout.Std())
	limiter := rate.NewLimiter(rate.Every(cfg.RequestDelay.Std()), 1)

	manifest := models.FetchManifest{Results: []models.FetchResult{}}
	for i, url := range urls {
		// Fixed inter-request pacing toward the remote origins.
		if err := limiter.Wait(context.Background()); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		name := cfg.RawArtifactName(i + 1)
		logger.Info("fetching", "url", url, "artifact", name)

		result := fetchOne(f, cfg.RawDir, name, url)
		if result.Status == models.StatusSuccess {
			manifest.Successful++
		} else {
			manifest.Failed++
			logger.Info("fetch failed", "url", url, "error", result.Error)
		}
		manifest.Results = append(manifest.Results, result)
	}

	manifest.URLsProcessed = len(urls)
	manifest.Timestamp = common.Now()

	if err := marker.Publish(cfg.FetchMarkerPath(), manifest); err != nil {
		return fmt.Errorf("failed to publish fetch manifest: %w", err)
	}
	logger.Info("fetch stage complete",
		"processed", manifest.URLsProcessed,
		"successful", manifest.Successful,
		"failed", manifest.Failed)
	return nil
}

// fetchOne attempts a single URL and converts any failure to a recorded
// result; nothing propagates out of the per-item loop.
func fetchOne(f *fetcher.Fetcher, rawDir, name, url string) models.FetchResult {
	body, err := f.Get(url)
	if err == nil {
		err = os.WriteFile(filepath.Join(rawDir, name), body, 0644)
	}
	if err != nil {
		return models.FetchResult{
			URL:    url,
			File:   nil,
			Status: models.StatusFailed,
			Error:  err.Error(),
		}
	}
	size := int64(len(body))
	return models.FetchResult{
		URL:    url,
		File:   &name,
		Size:   &size,
		Status: models.StatusSuccess,
	}
}
