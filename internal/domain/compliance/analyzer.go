// Package compliance maps business size onto regulation requirements.
// The lookup is keyed by size only; business type is carried through the
// result but does not affect rule selection.
package compliance

// Result is the compliance analysis for one business profile.
type Result struct {
	BusinessType string              `json:"business_type"`
	Size         string              `json:"size"`
	Requirements map[string][]string `json:"requirements"`
	Deadlines    []string            `json:"deadlines"`
}

// Known business sizes.
const (
	SizeSmallBusiness = "small_business"
	SizeLargeBusiness = "large_business"
)

var defaultRules = map[string]map[string][]string{
	SizeSmallBusiness: {
		"gdpr": {"Data protection officer not required", "Simplified reporting"},
		"sox":  {"Not applicable for private companies"},
		"ada":  {"Website accessibility required"},
	},
	SizeLargeBusiness: {
		"gdpr": {"Data protection officer required", "Full compliance reporting"},
		"sox":  {"Full compliance if public company"},
		"ada":  {"Full accessibility compliance"},
	},
}

var deadlines = []string{"Annual review required", "Quarterly assessments"}

// Analyzer resolves compliance requirements from a static rule table.
// It is a pure lookup with no I/O.
type Analyzer struct {
	rules map[string]map[string][]string
}

// NewAnalyzer creates an analyzer with the built-in rule table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{rules: defaultRules}
}

// NewAnalyzerWithRules creates an analyzer with an overriding rule table,
// e.g. one loaded from the rules database. Falls back to the built-in
// table when rules is empty.
func NewAnalyzerWithRules(rules map[string]map[string][]string) *Analyzer {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Analyzer{rules: rules}
}

// Analyze looks up requirements for the given size. Unknown sizes resolve
// to an empty requirements map, never an error. Deadlines are constant
// regardless of inputs.
func (a *Analyzer) Analyze(businessType, size string) Result {
	// The result gets its own copy so callers cannot mutate the shared table.
	requirements := map[string][]string{}
	for regulation, reqs := range a.rules[size] {
		requirements[regulation] = append([]string(nil), reqs...)
	}

	return Result{
		BusinessType: businessType,
		Size:         size,
		Requirements: requirements,
		Deadlines:    deadlines,
	}
}
