package courtlistener_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policynav/policynav/internal/courtlistener"
)

func newStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SearchOpinionsSendsAuthAndParams(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"caseName": "Doe v. Agency"}},
		})
	})

	client := courtlistener.NewClient(srv.URL, "secret-key", 0, nil)
	opinions := client.SearchOpinions(context.Background(), "section 230", 5)

	require.Len(t, opinions, 1)
	require.Equal(t, "Token secret-key", gotAuth)
	require.Equal(t, []string{"section 230"}, gotQuery["q"])
	require.Equal(t, []string{"o"}, gotQuery["type"])
	require.Equal(t, []string{"score desc"}, gotQuery["order_by"])
}

func TestClient_SearchOpinionsNoAuthHeaderWithoutKey(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	})

	client := courtlistener.NewClient(srv.URL, "", 0, nil)
	client.SearchOpinions(context.Background(), "x", 5)
}

func TestClient_SearchOpinionsTruncatesToLimit(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]any, 8)
		for i := range results {
			results[i] = map[string]any{"caseName": "Case"}
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})

	client := courtlistener.NewClient(srv.URL, "", 0, nil)
	opinions := client.SearchOpinions(context.Background(), "x", 3)
	require.Len(t, opinions, 3)
}

func TestClient_SearchOpinionsDegradesToEmpty(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := courtlistener.NewClient(srv.URL, "", 0, nil)
	require.Empty(t, client.SearchOpinions(context.Background(), "x", 5))
}

func TestClient_CasesForPolicyProjectsDefaults(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"caseName":     "Smith v. EPA",
					"court":        "Ninth Circuit",
					"dateFiled":    "2023-06-01",
					"snippet":      "…the regulation at issue…",
					"absolute_url": "/opinion/12345/smith-v-epa/",
				},
				{},
			},
		})
	})

	client := courtlistener.NewClient(srv.URL, "", 0, nil)
	cases := client.CasesForPolicy(context.Background(), "Clean Air Act")

	require.Len(t, cases, 2)
	require.Equal(t, "Smith v. EPA", cases[0].CaseName)
	require.Equal(t, "Ninth Circuit", cases[0].Court)
	require.Equal(t, srv.URL+"/opinion/12345/smith-v-epa/", cases[0].URL)

	require.Equal(t, "Unknown", cases[1].CaseName)
	require.Equal(t, "Unknown Court", cases[1].Court)
	require.Equal(t, srv.URL, cases[1].URL)
}

func TestClient_CasesForPolicyEmptyOnFailure(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	client := courtlistener.NewClient(srv.URL, "", 0, nil)
	require.Empty(t, client.CasesForPolicy(context.Background(), "x"))
}
