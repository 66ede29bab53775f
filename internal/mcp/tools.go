package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/federalregister"
	"github.com/policynav/policynav/internal/navigator"
)

// QueryParams are inputs for the query tool.
type QueryParams struct {
	Query string `json:"query" jsonschema:"Natural language policy question"`
}

// SearchPoliciesParams are inputs for search_policies.
type SearchPoliciesParams struct {
	Query string `json:"query" jsonschema:"Search terms for the Federal Register"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

// SearchPoliciesResult wraps registry search hits.
type SearchPoliciesResult struct {
	Results []federalregister.DocumentRecord `json:"results"`
}

// CheckStatusParams are inputs for check_policy_status.
type CheckStatusParams struct {
	PolicyID string `json:"policy_id" jsonschema:"Policy identifier, e.g. an executive order number"`
}

// StatusResult mirrors the resolver output for tool consumers.
type StatusResult struct {
	PolicyID      string                       `json:"policy_id"`
	FederalStatus federalregister.StatusRecord `json:"federal_status"`
	RelatedCases  []courtlistener.CaseRecord   `json:"related_cases"`
	Summary       string                       `json:"summary"`
}

// ComplianceParams are inputs for analyze_compliance.
type ComplianceParams struct {
	BusinessType string `json:"business_type,omitempty" jsonschema:"Type of business (informational)"`
	Size         string `json:"size" jsonschema:"Business size: small_business or large_business"`
}

// IndexURLParams are inputs for index_url.
type IndexURLParams struct {
	URL string `json:"url" jsonschema:"Web page URL to fetch and index"`
}

// UploadParams are inputs for upload_document.
type UploadParams struct {
	FilePath string `json:"file_path" jsonschema:"Path to a local text document"`
	DocType  string `json:"doc_type,omitempty" jsonschema:"Document type label (default policy)"`
}

// SearchIndexedParams are inputs for search_indexed.
type SearchIndexedParams struct {
	Query string `json:"query" jsonschema:"Literal text to match against indexed documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 5)"`
}

// SearchIndexedResult wraps document store hits.
type SearchIndexedResult struct {
	Results []document.SearchResult `json:"results"`
}

// StatsParams are inputs for get_stats (none).
type StatsParams struct{}

// AlertParams are inputs for send_policy_alert.
type AlertParams struct {
	Title    string `json:"title" jsonschema:"Policy title"`
	Status   string `json:"status,omitempty" jsonschema:"Current policy status"`
	Source   string `json:"source,omitempty" jsonschema:"Information source"`
	Deadline string `json:"deadline,omitempty" jsonschema:"Compliance deadline, schedules a reminder when set"`
}

func registerTools(server *sdkmcp.Server, nav *navigator.Navigator) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "query",
		Description: "Answer a natural language question about policies, status, or compliance",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in QueryParams) (*sdkmcp.CallToolResult, navigator.QueryAnswer, error) {
		answer, err := nav.Query(ctx, in.Query)
		return nil, answer, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_policies",
		Description: "Search Federal Register documents by term",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SearchPoliciesParams) (*sdkmcp.CallToolResult, SearchPoliciesResult, error) {
		docs, err := nav.SearchPolicies(ctx, in.Query, in.Limit)
		if err != nil {
			return nil, SearchPoliciesResult{}, err
		}
		return nil, SearchPoliciesResult{Results: docs}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_policy_status",
		Description: "Check whether a policy is still in effect and list related case law",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CheckStatusParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		result, err := nav.CheckPolicyStatus(ctx, in.PolicyID)
		if err != nil {
			return nil, StatusResult{}, err
		}
		return nil, StatusResult{
			PolicyID:      result.PolicyID,
			FederalStatus: result.FederalStatus,
			RelatedCases:  result.RelatedCases,
			Summary:       result.Summary,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "analyze_compliance",
		Description: "Analyze compliance requirements for a business size",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ComplianceParams) (*sdkmcp.CallToolResult, navigator.ComplianceAnalysis, error) {
		businessType := in.BusinessType
		if businessType == "" {
			businessType = "general"
		}
		return nil, nav.AnalyzeCompliance(businessType, in.Size), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "index_url",
		Description: "Fetch a web page and add its text to the document store",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in IndexURLParams) (*sdkmcp.CallToolResult, document.IndexResult, error) {
		return nil, nav.IndexURL(ctx, in.URL), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "upload_document",
		Description: "Read a local file and add it to the document store",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UploadParams) (*sdkmcp.CallToolResult, document.UploadResult, error) {
		return nil, nav.UploadDocument(in.FilePath, in.DocType), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_indexed",
		Description: "Search indexed documents by literal text match",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SearchIndexedParams) (*sdkmcp.CallToolResult, SearchIndexedResult, error) {
		return nil, SearchIndexedResult{Results: nav.SearchIndexed(in.Query, in.Limit)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_stats",
		Description: "Get document store and dataset statistics",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in StatsParams) (*sdkmcp.CallToolResult, navigator.SystemStats, error) {
		return nil, nav.Stats(), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "send_policy_alert",
		Description: "Send a policy update to the configured external integrations",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AlertParams) (*sdkmcp.CallToolResult, alert.DispatchResult, error) {
		return nil, nav.SendPolicyAlert(ctx, alert.PolicyInfo{
			Title:    in.Title,
			Status:   in.Status,
			Source:   in.Source,
			Deadline: in.Deadline,
		}), nil
	})
}
