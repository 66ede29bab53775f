package federalregister_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policynav/policynav/internal/federalregister"
)

type countingFailures struct{ n int }

func (c *countingFailures) Inc() { c.n++ }

func newStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SearchSendsTermAndFields(t *testing.T) {
	var gotQuery map[string][]string
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents.json", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Clean Air Act Update", "publication_date": "2024-03-01"},
			},
		})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	docs := client.Search(context.Background(), "clean air", 7)

	require.Len(t, docs, 1)
	require.Equal(t, "Clean Air Act Update", docs[0].Title)
	require.Equal(t, []string{"clean air"}, gotQuery["conditions[term]"])
	require.Equal(t, []string{"7"}, gotQuery["per_page"])
	require.Contains(t, gotQuery["fields[]"], "publication_date")
	require.Contains(t, gotQuery["fields[]"], "agencies")
}

func TestClient_SearchDegradesToEmptyOnServerError(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	counter := &countingFailures{}
	client := federalregister.NewClient(srv.URL, 0, nil)
	client.SetFailureCounter(counter)

	docs := client.Search(context.Background(), "anything", 5)
	require.Empty(t, docs)
	require.Equal(t, 1, counter.n)
}

func TestClient_SearchDegradesToEmptyOnBadJSON(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	require.Empty(t, client.Search(context.Background(), "anything", 5))
}

func TestClient_RecentOrdersNewest(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "newest", r.URL.Query().Get("order"))
		require.Equal(t, "3", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"title": "A"}, {"title": "B"}},
		})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	docs := client.Recent(context.Background(), 3)
	require.Len(t, docs, 2)
}

func TestClient_GetDocumentEscapesNumber(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/2024-12345.json", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"title": "Doc", "document_number": "2024-12345"})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	rec := client.GetDocument(context.Background(), "2024-12345")
	require.NotNil(t, rec)
	require.Equal(t, "2024-12345", rec.DocumentNumber)
}

func TestClient_CheckStatusPicksLatestPublication(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Old", "publication_date": "2021-05-01", "html_url": "https://fr.example/old"},
				{"title": "New", "publication_date": "2024-02-15", "html_url": "https://fr.example/new", "type": "Rule"},
				{"title": "Mid", "publication_date": "2022-09-30", "html_url": "https://fr.example/mid"},
			},
		})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	status := client.CheckStatus(context.Background(), "EO-14067")

	require.Equal(t, federalregister.StatusActive, status.Status)
	require.Equal(t, "New", status.Title)
	require.Equal(t, "2024-02-15", status.PublicationDate)
	require.Equal(t, "https://fr.example/new", status.URL)
	require.Equal(t, "Rule", status.Type)
}

func TestClient_CheckStatusTieKeepsLastEncountered(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "First", "publication_date": "2024-02-15"},
				{"title": "Second", "publication_date": "2024-02-15"},
			},
		})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	status := client.CheckStatus(context.Background(), "GDPR")
	require.Equal(t, "Second", status.Title)
}

func TestClient_CheckStatusNotFound(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	})

	client := federalregister.NewClient(srv.URL, 0, nil)
	status := client.CheckStatus(context.Background(), "Section-230")

	require.Equal(t, federalregister.StatusNotFound, status.Status)
	require.Equal(t, "No documents found for Section-230", status.Message)
	require.Empty(t, status.Title)
}
