package policy

import (
	"context"

	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/federalregister"
)

// RegistryClient checks policy status against the regulation registry.
type RegistryClient interface {
	Search(ctx context.Context, query string, limit int) []federalregister.DocumentRecord
	CheckStatus(ctx context.Context, policyID string) federalregister.StatusRecord
}

// CaseLawClient retrieves case law related to a policy.
type CaseLawClient interface {
	CasesForPolicy(ctx context.Context, policyName string) []courtlistener.CaseRecord
}
