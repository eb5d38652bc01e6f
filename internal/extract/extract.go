// Package extract turns one journal HTML export file into an Entry.
//
// The export layout places the localized date in div.pageHeader and the
// entry title in div.title; everything else inside <body> is entry text.
// Files that do not fit (no parseable date, no text) produce a SkipError
// so the batch can continue without them.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"sentir/internal/types"
)

var (
	strict   = bluemonday.StrictPolicy()
	brTag    = regexp.MustCompile(`(?i)<br\s*/?>`)
	bulletRe = regexp.MustCompile(`\s*•\s*`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Parse reads one HTML entry file and returns the extracted Entry.
// Unusable files return a *types.SkipError; anything else is an I/O or
// parse failure worth surfacing.
func Parse(path string) (*types.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry file: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	name := filepath.Base(path)

	header := doc.Find("div.pageHeader").First().Text()
	title := normalize(doc.Find("div.title").First().Text())

	date, err := ParseDateHeader(header)
	if err != nil {
		return nil, types.NewSkipError(name, err.Error())
	}

	body := bodyText(doc, path)
	if body == "" {
		return nil, types.NewSkipError(name, "empty body")
	}

	return &types.Entry{
		Date:  date,
		Title: title,
		Body:  body,
	}, nil
}

// bodyText collects the entry text from the document body, excluding the
// header and title blocks. Every text node outside those blocks counts as
// entry text; paragraph and list boundaries become spaces, bullets become
// " - ", and whitespace is collapsed.
//
// When the body carries no text at all, readability picks the main content
// out of the pruned body; raw body text is the last resort.
func bodyText(doc *goquery.Document, path string) string {
	sel := doc.Find("body")
	sel.Find("script, style, div.pageHeader, div.title").Remove()

	var parts []string
	collectText(sel, &parts)
	if len(parts) == 0 {
		text := readableText(sel, path)
		if text == "" {
			text = normalize(sel.Text())
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return normalize(bulletRe.ReplaceAllString(strings.Join(parts, " "), " - "))
}

// collectText walks the body in document order. Paragraphs and list items
// are rendered whole (their inline markup sanitized away); any other text
// node is kept as-is, so bare divs and loose text never get lost.
func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if text := normalize(c.Text()); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		if c.Is("p, li") {
			if text := fragmentText(c); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		collectText(c, parts)
	})
}

// fragmentText renders one block element as plain text. The strict policy
// drops any residual inline markup; entities are unescaped afterwards
// because sanitizing re-escapes them.
func fragmentText(s *goquery.Selection) string {
	h, err := s.Html()
	if err != nil {
		return normalize(s.Text())
	}
	h = brTag.ReplaceAllString(h, " ")
	return normalize(html.UnescapeString(strict.Sanitize(h)))
}

// readableText runs readability over the pruned body so navigation and
// app chrome fall away. The header and title were already removed, so
// the date can never leak into the body.
func readableText(sel *goquery.Selection, path string) string {
	pruned, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}

	pageURL, err := url.Parse("file://" + filepath.ToSlash(path))
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(pruned), pageURL)
	if err != nil {
		return ""
	}
	return normalize(article.TextContent)
}

func normalize(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
