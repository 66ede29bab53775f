// Package testserver builds a fully wired REST facade over stubbed
// external sources for tests.
package testserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/dataset"
	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/compliance"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/domain/policy"
	"github.com/policynav/policynav/internal/federalregister"
	"github.com/policynav/policynav/internal/metrics"
	"github.com/policynav/policynav/internal/navigator"
	"github.com/policynav/policynav/internal/transport"
)

// TestServer bundles a wired REST server and its collaborators.
type TestServer struct {
	Server *httptest.Server
	Store  *document.Store
	Nav    *navigator.Navigator
}

// Options configure the wired collaborators.
type Options struct {
	// RegistryURL and CourtURL point the adapters at stub servers.
	RegistryURL string
	CourtURL    string
	// Fetcher backs the store's IndexURL; may be nil.
	Fetcher document.Fetcher
	// SlackWebhookURL configures the alert service; empty disables Slack.
	SlackWebhookURL string
}

// New builds the full stack against stub endpoints and returns a running
// httptest server. Cleanup is registered on t.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	store := document.NewStore(opts.Fetcher, nil)
	registry := federalregister.NewClient(opts.RegistryURL, time.Second, nil)
	courts := courtlistener.NewClient(opts.CourtURL, "", time.Second, nil)

	policySvc := policy.NewService(registry, courts, nil)
	analyzer := compliance.NewAnalyzer()
	alerts := alert.NewService(opts.SlackWebhookURL, "", nil)
	loader := dataset.NewLoader(store, nil)

	nav := navigator.New(store, policySvc, analyzer, alerts, loader, nil)

	registryProm := prometheus.NewRegistry()
	m := metrics.New(registryProm)
	router := transport.NewRouter(nav, m, registryProm, nil)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Store: store, Nav: nav}
}
