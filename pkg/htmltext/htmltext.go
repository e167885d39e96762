// Package htmltext strips markup to plain text using deliberately simple
// heuristics: block removal by case-insensitive substring search, attribute
// harvesting and tag removal by regular expression. The behavior, including
// truncation at an unmatched opening tag, is the contract; it is not meant to
// be a conformant HTML parser.
package htmltext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	hrefRe = regexp.MustCompile(`[Hh][Rr][Ee][Ff]=['"]?([^'" >]+)`)
	srcRe  = regexp.MustCompile(`[Ss][Rr][Cc]=['"]?([^'" >]+)`)
	pTagRe = regexp.MustCompile(`<[Pp]\b`)
	tagRe  = regexp.MustCompile(`<[^>]+>`)
	wsRe   = regexp.MustCompile(`\s+`)
)

// Decode turns raw fetched bytes into a string, preferring UTF-8 and falling
// back to ISO-8859-1, which maps every byte and therefore never fails.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// asciiLower lowercases only ASCII letters so byte offsets into the result
// stay valid for the original string.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// RemoveTagBlock erases every <tag>...</tag> region, matching tags
// case-insensitively. If a closing tag is missing the document is truncated
// at the opening tag, discarding the likely-unbalanced remainder.
func RemoveTagBlock(html, tag string) string {
	low := asciiLower(html)
	openPat := "<" + tag
	closePat := "</" + tag + ">"

	for {
		start := strings.Index(low, openPat)
		if start == -1 {
			break
		}

		end := strings.Index(low[start:], closePat)
		if end == -1 {
			html = html[:start]
			break
		}

		end = start + end + len(closePat)
		html = html[:start] + " " + html[end:]
		low = asciiLower(html)
	}

	return html
}

// Strip removes script and style blocks, harvests hyperlink and image
// references in first-seen order (duplicates preserved), erases the remaining
// tags, and collapses runs of whitespace to single spaces.
func Strip(html string) (text string, links, images []string) {
	html = RemoveTagBlock(html, "script")
	html = RemoveTagBlock(html, "style")

	links = harvest(hrefRe, html)
	images = harvest(srcRe, html)

	text = tagRe.ReplaceAllString(html, " ")
	text = strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	return text, links, images
}

func harvest(re *regexp.Regexp, html string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(html, -1) {
		out = append(out, m[1])
	}
	return out
}

// CountParagraphs counts opening paragraph tags case-insensitively. A
// document with no paragraph tags but non-empty extracted text still counts
// as a single block of content.
func CountParagraphs(html, extractedText string) int {
	if n := len(pTagRe.FindAllStringIndex(html, -1)); n > 0 {
		return n
	}
	if strings.TrimSpace(extractedText) != "" {
		return 1
	}
	return 0
}
