package transport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/mocks"
	"github.com/policynav/policynav/internal/testserver"
)

func stubAPI(t *testing.T, payload any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func emptyResults(t *testing.T) *httptest.Server {
	return stubAPI(t, map[string]any{"results": []map[string]any{}})
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "Policy Navigator API", body["service"])
}

func TestStatusEndpoint(t *testing.T) {
	registry := stubAPI(t, map[string]any{
		"results": []map[string]any{
			{"title": "EO 14067", "publication_date": "2022-03-09", "html_url": "https://fr.example/eo"},
		},
	})
	courts := stubAPI(t, map[string]any{
		"results": []map[string]any{
			{"caseName": "Doe v. Treasury", "court": "D.C. Circuit", "absolute_url": "/opinion/1/doe/"},
		},
	})
	ts := testserver.New(t, testserver.Options{RegistryURL: registry.URL, CourtURL: courts.URL})

	resp := postJSON(t, ts.Server.URL+"/status", map[string]string{"policy_id": "EO-14067"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		PolicyID      string `json:"policy_id"`
		Summary       string `json:"summary"`
		FederalStatus struct {
			Status string `json:"status"`
			Title  string `json:"title"`
		} `json:"federal_status"`
		RelatedCases []struct {
			CaseName string `json:"case_name"`
		} `json:"related_cases"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, "EO-14067", body.PolicyID)
	require.Equal(t, "Policy EO-14067 status: active", body.Summary)
	require.Equal(t, "EO 14067", body.FederalStatus.Title)
	require.Len(t, body.RelatedCases, 1)
	require.Equal(t, "Doe v. Treasury", body.RelatedCases[0].CaseName)
}

func TestStatusEndpointRequiresPolicyID(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp := postJSON(t, ts.Server.URL+"/status", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Policy ID is required", body["error"])
}

func TestQueryEndpointRequiresQuery(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp := postJSON(t, ts.Server.URL+"/query", map[string]string{"query": "  "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "Query is required", body["error"])
}

func TestComplianceEndpointDefaults(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp := postJSON(t, ts.Server.URL+"/compliance", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		BusinessType string              `json:"business_type"`
		Size         string              `json:"size"`
		Requirements map[string][]string `json:"requirements"`
		Deadlines    []string            `json:"deadlines"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, "general", body.BusinessType)
	require.Equal(t, "small_business", body.Size)
	require.Contains(t, body.Requirements, "gdpr")
	require.Equal(t, []string{"Annual review required", "Quarterly assessments"}, body.Deadlines)
}

func TestIndexURLEndpoint(t *testing.T) {
	fetcher := &mocks.Fetcher{}
	fetcher.On("Fetch", mock.Anything, "https://example.gov/policy").
		Return(document.Page{Title: "Policy Page", Text: "policy body text"}, nil).Once()

	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
		Fetcher:     fetcher,
	})

	resp := postJSON(t, ts.Server.URL+"/index-url", map[string]string{"url": "https://example.gov/policy"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body document.IndexResult
	decodeBody(t, resp, &body)
	require.Equal(t, document.StatusIndexed, body.Status)
	require.Equal(t, "Policy Page", body.Title)

	// Same URL again comes back already_indexed without a second fetch.
	resp = postJSON(t, ts.Server.URL+"/index-url", map[string]string{"url": "https://example.gov/policy"})
	decodeBody(t, resp, &body)
	require.Equal(t, document.StatusAlreadyIndexed, body.Status)
	fetcher.AssertExpectations(t)
}

func TestIndexURLEndpointRequiresURL(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp := postJSON(t, ts.Server.URL+"/index-url", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "URL is required", body["error"])
}

func TestUploadEndpoint(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "policy.txt")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader("uploaded policy content"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("doc_type", "regulation"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(ts.Server.URL+"/upload", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body document.UploadResult
	decodeBody(t, resp, &body)
	require.Equal(t, document.StatusUploaded, body.Status)
	require.Equal(t, "policy.txt", body.Filename)

	results := ts.Store.Search("uploaded policy", 5)
	require.Len(t, results, 1)
	require.Equal(t, "regulation", results[0].Metadata["type"])
	require.Equal(t, "policy.txt", results[0].Metadata["filename"])
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp, err := http.Post(ts.Server.URL+"/upload", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "No file provided", body["error"])
}

func TestSearchIndexedEndpoint(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})
	ts.Store.Add("GDPR compliance guidance text", map[string]string{"title": "GDPR Guide"})

	resp := postJSON(t, ts.Server.URL+"/search-indexed", map[string]any{"query": "gdpr", "limit": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Results []document.SearchResult `json:"results"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Results, 1)
	require.Equal(t, "GDPR Guide", body.Results[0].Metadata["title"])
}

func TestStatsEndpoint(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})
	ts.Store.Add("one document", nil)

	resp, err := http.Get(ts.Server.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		DocumentStore document.Stats `json:"document_store"`
		Status        string         `json:"status"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, 1, body.DocumentStore.TotalDocuments)
	require.Equal(t, "active", body.Status)
}

func TestSendAlertEndpoint(t *testing.T) {
	var slackCalls int
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slackCalls++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(webhook.Close)

	ts := testserver.New(t, testserver.Options{
		RegistryURL:     emptyResults(t).URL,
		CourtURL:        emptyResults(t).URL,
		SlackWebhookURL: webhook.URL,
	})

	resp := postJSON(t, ts.Server.URL+"/send-alert", map[string]string{
		"title":    "GDPR",
		"status":   "active",
		"deadline": "2026-12-31",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Slack    bool `json:"slack"`
		Notion   struct{ Success bool }
		Calendar *struct {
			Success bool `json:"success"`
		} `json:"calendar"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Slack)
	require.NotNil(t, body.Calendar)
	require.True(t, body.Calendar.Success)
	require.Equal(t, 1, slackCalls)
}

func TestMetricsEndpointExposed(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	// Generate one observed request first.
	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "policynav_http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestInvalidJSONBody(t *testing.T) {
	ts := testserver.New(t, testserver.Options{
		RegistryURL: emptyResults(t).URL,
		CourtURL:    emptyResults(t).URL,
	})

	resp, err := http.Post(ts.Server.URL+"/query", "application/json", strings.NewReader("{broken"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.Equal(t, "invalid request body", body["error"])
}
