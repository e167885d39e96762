package arxiv

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// Paper is one arXiv entry with its abstract statistics attached.
type Paper struct {
	ArxivID       string        `json:"arxiv_id"`
	Title         string        `json:"title"`
	Authors       []string      `json:"authors"`
	Abstract      string        `json:"abstract"`
	Categories    []string      `json:"categories"`
	Published     string        `json:"published"`
	Updated       string        `json:"updated"`
	AbstractStats AbstractStats `json:"abstract_stats"`
}

// parseFeed decodes the Atom response. Entries missing any required field are
// skipped with a logged warning rather than failing the run.
func parseFeed(feedXML []byte, plog *runLog) ([]Paper, error) {
	feed, err := gofeed.NewParser().ParseString(string(feedXML))
	if err != nil {
		return nil, err
	}

	papers := []Paper{}
	for _, item := range feed.Items {
		fullID := normalizeSpace(item.GUID)
		arxivID := ""
		if fullID != "" {
			parts := strings.Split(fullID, "/")
			arxivID = parts[len(parts)-1]
		}

		title := normalizeSpace(item.Title)
		abstract := normalizeSpace(item.Description)
		published := normalizeSpace(item.Published)
		updated := normalizeSpace(item.Updated)

		if arxivID == "" || title == "" || abstract == "" || published == "" || updated == "" {
			plog.line("Warning: missing required fields, skipping entry")
			continue
		}

		authors := []string{}
		for _, person := range item.Authors {
			if person == nil {
				continue
			}
			if name := normalizeSpace(person.Name); name != "" {
				authors = append(authors, name)
			}
		}

		categories := []string{}
		for _, cat := range item.Categories {
			if term := normalizeSpace(cat); term != "" {
				categories = append(categories, term)
			}
		}

		papers = append(papers, Paper{
			ArxivID:       arxivID,
			Title:         title,
			Authors:       authors,
			Abstract:      abstract,
			Categories:    categories,
			Published:     published,
			Updated:       updated,
			AbstractStats: AnalyzeAbstract(abstract),
		})
	}

	return papers, nil
}

// normalizeSpace collapses internal whitespace runs and trims the edges.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
