// Package webpage fetches web pages and reduces them to plain text for
// indexing.
package webpage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/policynav/policynav/internal/domain/document"
)

// Fetcher retrieves pages over HTTP and strips markup. Implements
// document.Fetcher.
type Fetcher struct {
	http *http.Client
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch downloads a page and extracts its title and visible text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (document.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return document.Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return document.Page{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return document.Page{}, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return document.Page{}, fmt.Errorf("parse %s: %w", url, err)
	}

	return document.Page{
		Title: extractTitle(root),
		Text:  extractText(root),
	}, nil
}

func extractTitle(root *html.Node) string {
	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = strings.TrimSpace(sb.String())
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return title
}

// extractText collects text nodes outside script and style elements,
// collapsing runs of whitespace to single spaces.
func extractText(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return sb.String()
}
