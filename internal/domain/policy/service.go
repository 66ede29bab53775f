// Package policy resolves a policy identifier into a single normalized
// status verdict by merging two independent sources: the regulation
// registry and a case-law search.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/federalregister"
)

// Service handles policy status resolution.
type Service struct {
	registry RegistryClient
	caseLaw  CaseLawClient
	logger   *slog.Logger
}

// NewService creates a new policy service.
func NewService(registry RegistryClient, caseLaw CaseLawClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{registry: registry, caseLaw: caseLaw, logger: logger}
}

// CheckStatus queries both sources and merges their answers. The two calls
// are independent; a degraded answer from either side (empty cases,
// not_found status) flows through unchanged and the merge itself never
// fails.
func (s *Service) CheckStatus(ctx context.Context, policyID string) (StatusResult, error) {
	if strings.TrimSpace(policyID) == "" {
		return StatusResult{}, ErrEmptyPolicyID
	}

	federalStatus := s.registry.CheckStatus(ctx, policyID)
	cases := s.caseLaw.CasesForPolicy(ctx, policyID)
	if cases == nil {
		// Related cases are always a sequence, even when the search came
		// back empty; nil would serialize as JSON null.
		cases = []courtlistener.CaseRecord{}
	}

	return StatusResult{
		PolicyID:      policyID,
		FederalStatus: federalStatus,
		RelatedCases:  cases,
		Summary:       fmt.Sprintf("Policy %s status: %s", policyID, federalStatus.Status),
	}, nil
}

// SearchPolicies runs a registry term search on behalf of the facade.
func (s *Service) SearchPolicies(ctx context.Context, query string, limit int) ([]federalregister.DocumentRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.registry.Search(ctx, query, limit), nil
}
