// Package arxiv implements the literature-search utility: it queries the
// arXiv Atom API, extracts per-paper abstract statistics, and writes a
// corpus-level analysis. Like summarize, it is a single-stage program with no
// cross-process coordination.
package arxiv

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"webcorpus/internal/common"
	"webcorpus/pkg/fetcher"
	"webcorpus/pkg/storage"
)

const (
	apiBaseURL     = "http://export.arxiv.org/api/query"
	userAgent      = "webcorpus-arxiv/1.0"
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	retryWait      = 3 * time.Second
)

func ArxivAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	query := c.String("query")
	maxResults := c.Int("max-results")
	outputDir := c.String("output")

	if maxResults < 1 || maxResults > 100 {
		return cli.Exit("max-results must be between 1 and 100", 2)
	}

	if err := Run(query, maxResults, outputDir, logger); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// Run queries the arXiv API and writes papers.json, corpus_analysis.json and
// processing.log into outputDir. A network failure is the only error return;
// an unparsable feed degrades to an empty paper list.
func Run(query string, maxResults int, outputDir string, logger *slog.Logger) error {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	papersPath := filepath.Join(outputDir, "papers.json")
	corpusPath := filepath.Join(outputDir, "corpus_analysis.json")
	logPath := filepath.Join(outputDir, "processing.log")

	_ = os.Remove(logPath)
	plog := newRunLog(logPath, logger)

	plog.line("Starting ArXiv query: " + query)

	queryURL := buildQueryURL(query, maxResults)
	start := time.Now()

	feedXML, err := fetchFeed(queryURL, plog)
	if err != nil {
		plog.line("Network error contacting ArXiv API: " + err.Error())
		return fmt.Errorf("failed to query arXiv: %w", err)
	}

	papers, err := parseFeed(feedXML, plog)
	if err != nil {
		plog.line("Invalid XML from ArXiv API: " + err.Error())
		papers = []Paper{}
	} else {
		plog.line(fmt.Sprintf("Fetched %d results from ArXiv API", len(papers)))
	}

	for _, p := range papers {
		plog.line("Processing paper: " + p.ArxivID)
	}

	elapsed := time.Since(start).Seconds()
	plog.line(fmt.Sprintf("Completed processing: %d papers in %.2f seconds", len(papers), elapsed))

	if err := storage.WriteJSON(papersPath, papers); err != nil {
		return err
	}
	return storage.WriteJSON(corpusPath, BuildCorpusAnalysis(papers, query))
}

// fetchFeed retrieves the Atom feed, retrying up to maxAttempts times when
// the API answers 429. Any other failure is returned immediately.
func fetchFeed(url string, plog *runLog) ([]byte, error) {
	f := fetcher.New(requestTimeout)
	f.UserAgent = userAgent

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := f.GetResponse(url)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == 429 {
			plog.line(fmt.Sprintf("Received HTTP 429, waiting 3 seconds before retry (%d/%d)", attempt, maxAttempts))
			if attempt == maxAttempts {
				return nil, fmt.Errorf("HTTP error: 429")
			}
			time.Sleep(retryWait)
			continue
		}
		if !resp.OK() {
			return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	return nil, fmt.Errorf("failed to fetch from arXiv after retries")
}

// buildQueryURL percent-encodes the search query, leaving "-_.~:" intact so
// arXiv field queries such as cat:cs.AI survive encoding.
func buildQueryURL(query string, maxResults int) string {
	var sb strings.Builder
	for _, b := range []byte(query) {
		switch {
		case b >= 'a' && b <= 'z',
			b >= 'A' && b <= 'Z',
			b >= '0' && b <= '9',
			b == '-', b == '_', b == '.', b == '~', b == ':':
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d", apiBaseURL, sb.String(), maxResults)
}

// runLog appends timestamped lines to the processing log while mirroring them
// to the structured logger.
type runLog struct {
	path   string
	logger *slog.Logger
}

func newRunLog(path string, logger *slog.Logger) *runLog {
	return &runLog{path: path, logger: logger}
}

func (l *runLog) line(message string) {
	l.logger.Info(message)
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.logger.Warn("failed to append processing log", "error", err.Error())
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s\n", common.Now(), message)
}
