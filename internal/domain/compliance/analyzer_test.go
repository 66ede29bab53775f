package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policynav/policynav/internal/domain/compliance"
)

func TestAnalyzer_SmallBusiness(t *testing.T) {
	analyzer := compliance.NewAnalyzer()
	result := analyzer.Analyze("tech startup", compliance.SizeSmallBusiness)

	require.Equal(t, "tech startup", result.BusinessType)
	require.Equal(t, compliance.SizeSmallBusiness, result.Size)
	require.Equal(t, []string{"Data protection officer not required", "Simplified reporting"}, result.Requirements["gdpr"])
	require.Equal(t, []string{"Website accessibility required"}, result.Requirements["ada"])
}

func TestAnalyzer_LargeBusiness(t *testing.T) {
	analyzer := compliance.NewAnalyzer()
	result := analyzer.Analyze("general", compliance.SizeLargeBusiness)

	require.Equal(t, []string{"Data protection officer required", "Full compliance reporting"}, result.Requirements["gdpr"])
	require.Equal(t, []string{"Full compliance if public company"}, result.Requirements["sox"])
}

func TestAnalyzer_UnknownSizeResolvesEmpty(t *testing.T) {
	analyzer := compliance.NewAnalyzer()
	result := analyzer.Analyze("any", "unknown_size")

	require.Empty(t, result.Requirements)
	require.Equal(t, []string{"Annual review required", "Quarterly assessments"}, result.Deadlines)
}

func TestAnalyzer_DeadlinesConstant(t *testing.T) {
	analyzer := compliance.NewAnalyzer()
	small := analyzer.Analyze("a", compliance.SizeSmallBusiness)
	unknown := analyzer.Analyze("b", "nope")

	require.Equal(t, small.Deadlines, unknown.Deadlines)
}

func TestAnalyzer_BusinessTypeDoesNotAffectLookup(t *testing.T) {
	analyzer := compliance.NewAnalyzer()
	a := analyzer.Analyze("restaurant", compliance.SizeSmallBusiness)
	b := analyzer.Analyze("bank", compliance.SizeSmallBusiness)

	require.Equal(t, a.Requirements, b.Requirements)
}

func TestAnalyzer_ResultMutationDoesNotCorruptTable(t *testing.T) {
	analyzer := compliance.NewAnalyzer()

	first := analyzer.Analyze("any", compliance.SizeSmallBusiness)
	first.Requirements["gdpr"][0] = "mutated"
	first.Requirements["injected"] = []string{"bogus"}
	delete(first.Requirements, "ada")

	second := analyzer.Analyze("any", compliance.SizeSmallBusiness)
	require.Equal(t, []string{"Data protection officer not required", "Simplified reporting"}, second.Requirements["gdpr"])
	require.Contains(t, second.Requirements, "ada")
	require.NotContains(t, second.Requirements, "injected")
}

func TestAnalyzer_WithOverrideRules(t *testing.T) {
	rules := map[string]map[string][]string{
		"small_business": {"hipaa": {"Privacy notices required"}},
	}
	analyzer := compliance.NewAnalyzerWithRules(rules)

	result := analyzer.Analyze("clinic", compliance.SizeSmallBusiness)
	require.Equal(t, []string{"Privacy notices required"}, result.Requirements["hipaa"])
	require.NotContains(t, result.Requirements, "gdpr")
}

func TestAnalyzer_EmptyOverridesFallBack(t *testing.T) {
	analyzer := compliance.NewAnalyzerWithRules(nil)
	result := analyzer.Analyze("any", compliance.SizeLargeBusiness)
	require.Contains(t, result.Requirements, "gdpr")
}
