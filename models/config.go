// Package models defines the configuration and the data structures shared
// between the pipeline stages.
package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// RawExt is the extension of raw fetched artifacts.
	RawExt = ".html"
	// DocExt is the extension of structured documents.
	DocExt = ".json"

	fetchMarkerName   = "fetch_complete.json"
	extractMarkerName = "process_complete.json"
	reportName        = "final_report.json"
)

// Duration wraps time.Duration so config values can be written as "10s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the shared filesystem layout and stage tuning. The layout is
// configuration; the file shapes written into it are the contract.
type Config struct {
	InputFile    string `yaml:"input_file"`
	RawDir       string `yaml:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir"`
	StatusDir    string `yaml:"status_dir"`
	AnalysisDir  string `yaml:"analysis_dir"`

	PollInterval Duration `yaml:"poll_interval"`
	FetchTimeout Duration `yaml:"fetch_timeout"`
	RequestDelay Duration `yaml:"request_delay"`

	TopWords  int `yaml:"top_words"`
	TopNgrams int `yaml:"top_ngrams"`
}

// DefaultConfig returns the well-known layout used when no config file is
// given.
func DefaultConfig() *Config {
	return &Config{
		InputFile:    "shared/input/urls.txt",
		RawDir:       "shared/raw",
		ProcessedDir: "shared/processed",
		StatusDir:    "shared/status",
		AnalysisDir:  "shared/analysis",
		PollInterval: Duration(2 * time.Second),
		FetchTimeout: Duration(10 * time.Second),
		RequestDelay: Duration(1 * time.Second),
		TopWords:     100,
		TopNgrams:    50,
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// FetchMarkerPath is the completion marker the fetch stage publishes.
func (c *Config) FetchMarkerPath() string {
	return filepath.Join(c.StatusDir, fetchMarkerName)
}

// ExtractMarkerPath is the completion marker the extract stage publishes.
func (c *Config) ExtractMarkerPath() string {
	return filepath.Join(c.StatusDir, extractMarkerName)
}

// ReportPath is the terminal artifact of the analyze stage.
func (c *Config) ReportPath() string {
	return filepath.Join(c.AnalysisDir, reportName)
}

// RawArtifactName returns the stable name for the raw artifact of the URL at
// the given 1-based sequence index.
func (c *Config) RawArtifactName(index int) string {
	return fmt.Sprintf("page_%d%s", index, RawExt)
}
