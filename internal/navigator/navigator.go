// Package navigator is the orchestration facade. It owns the document
// store, the resolvers, and initial data loading, and exposes every
// operation the CLI, REST, and MCP surfaces call.
package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/policynav/policynav/internal/dataset"
	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/compliance"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/domain/policy"
	"github.com/policynav/policynav/internal/federalregister"
)

// Navigator wires the domain services behind one facade.
type Navigator struct {
	store      *document.Store
	policies   *policy.Service
	compliance *compliance.Analyzer
	alerts     *alert.Service
	loader     *dataset.Loader
	logger     *slog.Logger
}

// New creates the facade. All collaborators are injected; nothing here is
// a process-wide singleton, so tests can build isolated instances.
func New(store *document.Store, policies *policy.Service, analyzer *compliance.Analyzer, alerts *alert.Service, loader *dataset.Loader, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Navigator{
		store:      store,
		policies:   policies,
		compliance: analyzer,
		alerts:     alerts,
		loader:     loader,
		logger:     logger,
	}
}

// LoadInitialData seeds the store with the sample dataset and government
// websites. Failures are logged and non-fatal; the facade stays usable
// with whatever loaded.
func (n *Navigator) LoadInitialData(ctx context.Context) {
	report := n.loader.LoadSamplePolicies()
	n.logger.Info("sample dataset loaded", "documents", report.DocumentsIndexed)

	report = n.loader.LoadGovernmentWebsites(ctx)
	n.logger.Info("government websites loaded",
		"indexed", report.DocumentsIndexed,
		"processed", report.URLsProcessed,
		"errors", len(report.Errors))
}

// QueryAnswer is the response to a natural language query.
type QueryAnswer struct {
	Output string `json:"output"`
}

// Query answers a free-form question by routing it to the matching
// operation: status checks, compliance analysis, or document search.
func (n *Navigator) Query(ctx context.Context, query string) (QueryAnswer, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return QueryAnswer{}, policy.ErrEmptyQuery
	}
	lower := strings.ToLower(trimmed)

	if id, ok := statusSubject(trimmed, lower); ok {
		result, err := n.policies.CheckStatus(ctx, id)
		if err != nil {
			return QueryAnswer{}, err
		}
		return QueryAnswer{Output: formatStatus(result)}, nil
	}

	if strings.Contains(lower, "compliance") {
		size := compliance.SizeSmallBusiness
		if strings.Contains(lower, "large") {
			size = compliance.SizeLargeBusiness
		}
		analysis := n.AnalyzeCompliance("general", size)
		return QueryAnswer{Output: analysis.Output}, nil
	}

	return QueryAnswer{Output: n.searchAnswer(ctx, trimmed)}, nil
}

// statusSubject extracts a policy identifier from status-shaped questions
// like "status of EO-14067" or "is Executive Order 14067 still in effect?".
func statusSubject(query, lower string) (string, bool) {
	if idx := strings.Index(lower, "status of "); idx >= 0 {
		subject := strings.TrimSpace(query[idx+len("status of "):])
		subject = strings.TrimRight(subject, "?. ")
		return subject, subject != ""
	}

	if strings.HasPrefix(lower, "is ") && (strings.Contains(lower, "still in effect") || strings.Contains(lower, "still active")) {
		subject := query[len("is "):]
		for _, marker := range []string{" still in effect", " still active"} {
			if idx := strings.Index(strings.ToLower(subject), marker); idx >= 0 {
				subject = subject[:idx]
				break
			}
		}
		subject = strings.TrimRight(strings.TrimSpace(subject), "?. ")
		return subject, subject != ""
	}

	return "", false
}

func (n *Navigator) searchAnswer(ctx context.Context, query string) string {
	var sb strings.Builder

	indexed := n.store.Search(query, document.DefaultSearchLimit)
	if len(indexed) > 0 {
		sb.WriteString("Indexed documents:\n")
		for _, hit := range indexed {
			title := hit.Metadata["title"]
			if title == "" {
				title = hit.DocID
			}
			fmt.Fprintf(&sb, "- %s (score %d)\n", title, hit.Score)
		}
	}

	registry, err := n.policies.SearchPolicies(ctx, query, 5)
	if err == nil && len(registry) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Federal Register:\n")
		for _, doc := range registry {
			fmt.Fprintf(&sb, "- %s (%s)\n", doc.Title, doc.PublicationDate)
		}
	}

	if sb.Len() == 0 {
		return fmt.Sprintf("No results found for %q", query)
	}
	return sb.String()
}

// CheckPolicyStatus resolves a policy status via both external sources.
func (n *Navigator) CheckPolicyStatus(ctx context.Context, policyID string) (policy.StatusResult, error) {
	return n.policies.CheckStatus(ctx, policyID)
}

// SearchPolicies runs a registry term search.
func (n *Navigator) SearchPolicies(ctx context.Context, query string, limit int) ([]federalregister.DocumentRecord, error) {
	return n.policies.SearchPolicies(ctx, query, limit)
}

// ComplianceAnalysis pairs the raw result with a formatted answer.
type ComplianceAnalysis struct {
	Output       string              `json:"output"`
	BusinessType string              `json:"business_type"`
	Size         string              `json:"size"`
	Requirements map[string][]string `json:"requirements"`
	Deadlines    []string            `json:"deadlines"`
}

// AnalyzeCompliance resolves requirements and formats them for display.
func (n *Navigator) AnalyzeCompliance(businessType, size string) ComplianceAnalysis {
	result := n.compliance.Analyze(businessType, size)

	// Stable regulation order for the rendered bullet list.
	regulations := make([]string, 0, len(result.Requirements))
	for reg := range result.Requirements {
		regulations = append(regulations, reg)
	}
	sort.Strings(regulations)

	var bullets []string
	for _, reg := range regulations {
		for _, req := range result.Requirements[reg] {
			bullets = append(bullets, "• "+req)
		}
	}

	output := fmt.Sprintf(
		"Based on current regulations for %s %s:\n\n%s\n\nCompliance deadlines: %s\n\nSource: Government Compliance Database",
		size, businessType, strings.Join(bullets, "\n"), strings.Join(result.Deadlines, ", "))

	return ComplianceAnalysis{
		Output:       output,
		BusinessType: result.BusinessType,
		Size:         result.Size,
		Requirements: result.Requirements,
		Deadlines:    result.Deadlines,
	}
}

// UploadDocument indexes a local file.
func (n *Navigator) UploadDocument(path, docType string) document.UploadResult {
	return n.store.Upload(path, docType)
}

// IndexURL ingests a web page.
func (n *Navigator) IndexURL(ctx context.Context, url string) document.IndexResult {
	return n.store.IndexURL(ctx, url)
}

// SearchIndexed searches the in-memory document store.
func (n *Navigator) SearchIndexed(query string, limit int) []document.SearchResult {
	return n.store.Search(query, limit)
}

// SendPolicyAlert pushes a policy update to the external integrations.
func (n *Navigator) SendPolicyAlert(ctx context.Context, info alert.PolicyInfo) alert.DispatchResult {
	return n.alerts.HandlePolicyUpdate(ctx, info)
}

// SystemStats aggregates store and loader state.
type SystemStats struct {
	DocumentStore document.Stats `json:"document_store"`
	Datasets      []string       `json:"datasets"`
	Status        string         `json:"status"`
}

// Stats reports system statistics.
func (n *Navigator) Stats() SystemStats {
	return SystemStats{
		DocumentStore: n.store.Stats(),
		Datasets:      n.loader.LoadedDatasets(),
		Status:        "active",
	}
}

func formatStatus(result policy.StatusResult) string {
	var sb strings.Builder
	sb.WriteString(result.Summary)
	if result.FederalStatus.Title != "" {
		fmt.Fprintf(&sb, "\nTitle: %s", result.FederalStatus.Title)
	}
	if result.FederalStatus.PublicationDate != "" {
		fmt.Fprintf(&sb, "\nPublication date: %s", result.FederalStatus.PublicationDate)
	}
	if result.FederalStatus.URL != "" {
		fmt.Fprintf(&sb, "\nURL: %s", result.FederalStatus.URL)
	}
	if len(result.RelatedCases) > 0 {
		fmt.Fprintf(&sb, "\nRelated cases: %d", len(result.RelatedCases))
	}
	return sb.String()
}
