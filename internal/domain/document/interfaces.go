package document

import "context"

// Page is fetched web content reduced to plain text.
type Page struct {
	Title string
	Text  string
}

// Fetcher retrieves a web page and strips it to plain text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}
