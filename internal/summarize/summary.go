package summarize

import "strconv"

// Summary aggregates all response records for one run.
type Summary struct {
	TotalURLs             int            `json:"total_urls"`
	SuccessfulRequests    int            `json:"successful_requests"`
	FailedRequests        int            `json:"failed_requests"`
	AverageResponseTimeMs float64        `json:"average_response_time_ms"`
	TotalBytesDownloaded  int64          `json:"total_bytes_downloaded"`
	StatusCodeDist        map[string]int `json:"status_code_distribution"`
	ProcessingStart       string         `json:"processing_start"`
	ProcessingEnd         string         `json:"processing_end"`
}

// Summarize folds the per-URL records into run totals. A request counts as
// successful only when it completed without error and returned a 2xx status.
func Summarize(records []Record, start, end string) Summary {
	s := Summary{
		TotalURLs:       len(records),
		StatusCodeDist:  map[string]int{},
		ProcessingStart: start,
		ProcessingEnd:   end,
	}

	totalMs := 0.0
	for _, r := range records {
		if r.StatusCode != nil {
			s.StatusCodeDist[strconv.Itoa(*r.StatusCode)]++
		}

		success := r.Error == nil &&
			r.StatusCode != nil &&
			*r.StatusCode >= 200 && *r.StatusCode <= 299
		if success {
			s.SuccessfulRequests++
		} else {
			s.FailedRequests++
		}

		if r.ResponseTimeMs != nil {
			totalMs += *r.ResponseTimeMs
		}
		if r.ContentLength != nil {
			s.TotalBytesDownloaded += *r.ContentLength
		}
	}

	if s.TotalURLs > 0 {
		s.AverageResponseTimeMs = totalMs / float64(s.TotalURLs)
	}
	return s
}
