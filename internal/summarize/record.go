package summarize

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"webcorpus/internal/common"
	"webcorpus/pkg/fetcher"
)

// Record is one per-URL response record. Nullable fields are pointers so the
// JSON output keeps explicit nulls for data that could not be measured.
type Record struct {
	URL            string   `json:"url"`
	StatusCode     *int     `json:"status_code"`
	ResponseTimeMs *float64 `json:"response_time_ms"`
	ContentLength  *int64   `json:"content_length"`
	WordCount      *int     `json:"word_count"`
	Title          string   `json:"title,omitempty"`
	Excerpt        string   `json:"excerpt,omitempty"`
	SiteName       string   `json:"site_name,omitempty"`
	Timestamp      string   `json:"timestamp"`
	Error          *string  `json:"error"`
}

// fetchURL attempts one URL and always returns a record; every failure mode
// is captured as data.
func fetchURL(f *fetcher.Fetcher, rawURL string) Record {
	rec := Record{
		URL:       rawURL,
		Timestamp: common.Now(),
	}

	start := time.Now()
	resp, err := f.GetResponse(rawURL)
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	rec.ResponseTimeMs = &elapsed

	if err != nil {
		msg := err.Error()
		rec.Error = &msg
		return rec
	}

	rec.StatusCode = &resp.StatusCode
	length := int64(len(resp.Body))
	rec.ContentLength = &length

	if isTextContent(resp.ContentType) && len(resp.Body) > 0 {
		wc := countWords(resp.Body)
		rec.WordCount = &wc
	}

	if !resp.OK() {
		msg := fmt.Sprintf("HTTPError: %d", resp.StatusCode)
		rec.Error = &msg
		return rec
	}

	if strings.Contains(strings.ToLower(resp.ContentType), "html") {
		enrich(&rec, rawURL, resp.Body)
	}
	return rec
}

// enrich adds the page title, excerpt and site name when the body parses as
// HTML. Enrichment failures are ignored; the record stays valid without them.
func enrich(rec *Record, rawURL string, body []byte) {
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		rec.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return
	}
	rec.Excerpt = strings.TrimSpace(article.Excerpt)
	rec.SiteName = strings.TrimSpace(article.SiteName)
	if rec.Title == "" {
		rec.Title = strings.TrimSpace(article.Title)
	}
}

func isTextContent(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text")
}

// countWords counts maximal alphanumeric runs in the decoded body. Bytes that
// do not decode cleanly simply break runs.
func countWords(body []byte) int {
	count := 0
	inWord := false
	for _, r := range string(body) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if !inWord {
				count++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return count
}
