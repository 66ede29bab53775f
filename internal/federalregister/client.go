// Package federalregister is a thin client for the Federal Register
// document search API.
package federalregister

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DocumentRecord is one document as returned by the registry search.
// All fields are optional in the upstream payload; absent fields decode
// to their zero values.
type DocumentRecord struct {
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	HTMLURL         string   `json:"html_url"`
	PublicationDate string   `json:"publication_date"`
	Type            string   `json:"type"`
	Agencies        []Agency `json:"agencies"`
	DocumentNumber  string   `json:"document_number"`
}

// Agency identifies an issuing agency on a document record.
type Agency struct {
	Name string `json:"name"`
}

// PolicyStatus values reported by CheckStatus.
const (
	StatusActive   = "active"
	StatusNotFound = "not_found"
)

// StatusRecord is the normalized verdict from CheckStatus.
type StatusRecord struct {
	Status          string `json:"status"`
	Title           string `json:"title,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	URL             string `json:"url,omitempty"`
	Type            string `json:"type,omitempty"`
	Message         string `json:"message,omitempty"`
}

type searchResponse struct {
	Results []DocumentRecord `json:"results"`
}

// Client queries the Federal Register API. Transport and HTTP failures are
// absorbed at this boundary: search operations log the failure once and
// return an empty result set, so callers never see a transport error.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	failures FailureCounter
}

// FailureCounter counts absorbed transport failures. prometheus.Counter
// satisfies it.
type FailureCounter interface {
	Inc()
}

// NewClient creates a registry client. baseURL has no trailing slash.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetFailureCounter wires a metric incremented for each absorbed failure.
func (c *Client) SetFailureCounter(counter FailureCounter) {
	c.failures = counter
}

func (c *Client) countFailure() {
	if c.failures != nil {
		c.failures.Inc()
	}
}

// Search runs a term search and returns records in registry relevance order.
// Any failure degrades to an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []DocumentRecord {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("conditions[term]", query)
	params.Set("per_page", fmt.Sprint(limit))
	for _, field := range []string{"title", "abstract", "html_url", "publication_date", "type", "agencies"} {
		params.Add("fields[]", field)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/documents.json?"+params.Encode(), &resp); err != nil {
		c.logger.Warn("federal register search failed", "query", query, "error", err)
		c.countFailure()
		return nil
	}
	return resp.Results
}

// GetDocument fetches a single document by its Federal Register number.
// Returns nil when the document cannot be fetched.
func (c *Client) GetDocument(ctx context.Context, documentNumber string) *DocumentRecord {
	var rec DocumentRecord
	path := "/documents/" + url.PathEscape(documentNumber) + ".json"
	if err := c.getJSON(ctx, path, &rec); err != nil {
		c.logger.Warn("federal register document fetch failed", "document_number", documentNumber, "error", err)
		c.countFailure()
		return nil
	}
	return &rec
}

// Recent returns the newest documents, used to seed the scrape archive.
func (c *Client) Recent(ctx context.Context, limit int) []DocumentRecord {
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("per_page", fmt.Sprint(limit))
	params.Set("order", "newest")

	var resp searchResponse
	if err := c.getJSON(ctx, "/documents.json?"+params.Encode(), &resp); err != nil {
		c.logger.Warn("federal register scrape failed", "error", err)
		c.countFailure()
		return nil
	}
	return resp.Results
}

// CheckStatus reports whether a policy is still in effect, based on the most
// recently published document matching the policy ID. "Most recent" is a
// lexicographic max over publication_date strings; upstream emits ISO dates,
// so string order matches date order as long as that holds.
func (c *Client) CheckStatus(ctx context.Context, policyID string) StatusRecord {
	docs := c.Search(ctx, policyID, 5)
	if len(docs) == 0 {
		return StatusRecord{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No documents found for %s", policyID),
		}
	}

	latest := docs[0]
	for _, doc := range docs[1:] {
		if doc.PublicationDate >= latest.PublicationDate {
			latest = doc
		}
	}

	return StatusRecord{
		Status:          StatusActive,
		Title:           latest.Title,
		PublicationDate: latest.PublicationDate,
		URL:             latest.HTMLURL,
		Type:            latest.Type,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
