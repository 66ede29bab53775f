// Package courtlistener is a thin client for the CourtListener opinion
// search API.
package courtlistener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Opinion is one raw opinion record from the search endpoint. Fields are
// optional upstream; absent fields decode to zero values.
type Opinion struct {
	CaseName    string `json:"caseName"`
	Court       string `json:"court"`
	DateFiled   string `json:"dateFiled"`
	Snippet     string `json:"snippet"`
	AbsoluteURL string `json:"absolute_url"`
}

// CaseRecord is an opinion projected into the shape the status resolver
// reports, with a fully qualified URL.
type CaseRecord struct {
	CaseName  string `json:"case_name"`
	Court     string `json:"court"`
	DateFiled string `json:"date_filed"`
	Snippet   string `json:"snippet"`
	URL       string `json:"url"`
}

type searchResponse struct {
	Results []Opinion `json:"results"`
}

// Client queries the CourtListener API. Like the registry client, transport
// failures degrade to empty results and are logged once here.
type Client struct {
	baseURL  string
	siteURL  string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
	failures FailureCounter
}

// FailureCounter counts absorbed transport failures. prometheus.Counter
// satisfies it.
type FailureCounter interface {
	Inc()
}

// NewClient creates a CourtListener client. apiKey may be empty for
// unauthenticated (rate-limited) access.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		siteURL: siteURL(baseURL),
		apiKey:  apiKey,
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

// SearchOpinions searches court opinions ordered by relevance, truncated to
// limit. Any failure degrades to an empty slice.
func (c *Client) SearchOpinions(ctx context.Context, query string, limit int) []Opinion {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "o") // opinions
	params.Set("format", "json")
	params.Set("order_by", "score desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("courtlistener search failed", "query", query, "error", err)
		c.countFailure()
		return nil
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("courtlistener search failed", "query", query, "error", err)
		c.countFailure()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("courtlistener search failed", "query", query, "error", fmt.Errorf("unexpected status %d", resp.StatusCode))
		c.countFailure()
		return nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("courtlistener search failed", "query", query, "error", err)
		c.countFailure()
		return nil
	}

	results := body.Results
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// CasesForPolicy returns case law related to a policy, projected into
// CaseRecords with absolute URLs.
func (c *Client) CasesForPolicy(ctx context.Context, policyName string) []CaseRecord {
	opinions := c.SearchOpinions(ctx, policyName, 5)

	cases := make([]CaseRecord, 0, len(opinions))
	for _, op := range opinions {
		name := op.CaseName
		if name == "" {
			name = "Unknown"
		}
		court := op.Court
		if court == "" {
			court = "Unknown Court"
		}
		cases = append(cases, CaseRecord{
			CaseName:  name,
			Court:     court,
			DateFiled: op.DateFiled,
			Snippet:   op.Snippet,
			URL:       c.siteURL + op.AbsoluteURL,
		})
	}
	return cases
}

// siteURL derives the public site origin from the API base URL so relative
// opinion paths can be made absolute.
func siteURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
