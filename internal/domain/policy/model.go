package policy

import (
	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/federalregister"
)

// StatusResult merges the registry verdict and related case law for one
// policy. Computed fresh per call; never cached.
type StatusResult struct {
	PolicyID      string                       `json:"policy_id"`
	FederalStatus federalregister.StatusRecord `json:"federal_status"`
	RelatedCases  []courtlistener.CaseRecord   `json:"related_cases"`
	Summary       string                       `json:"summary"`
}
