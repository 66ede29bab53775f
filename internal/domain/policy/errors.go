package policy

import "errors"

var (
	// ErrEmptyPolicyID indicates a status check without a policy ID.
	ErrEmptyPolicyID = errors.New("policy id is required")
	// ErrEmptyQuery indicates a policy search without a query.
	ErrEmptyQuery = errors.New("query is required")
)
