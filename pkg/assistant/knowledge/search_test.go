package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
)

func writeCorpus(t *testing.T, files map[string]string) *Base {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return NewBase(dir, logger.NewNopLogger())
}

func TestSearchScoring(t *testing.T) {
	b := writeCorpus(t, map[string]string{
		"leave_policy.txt":  "Employees are entitled to 24 days of annual leave per year.",
		"holiday_list.txt":  "Republic Day, Independence Day, Diwali, Christmas.",
		"expense_guide.txt": "Submit expenses within 30 days.",
	})

	results := b.Search("leave")

	require.Len(t, results, 1)
	assert.Equal(t, "leave_policy.txt", results[0].Filename)
	// +4 filename hit, +2 content hit, +10 full phrase in filename
	assert.Equal(t, 16, results[0].Score)
	assert.Contains(t, results[0].Content, "annual leave")
}

func TestSearchExcludesSidecarsAndZeroScores(t *testing.T) {
	b := writeCorpus(t, map[string]string{
		"holiday_list.txt":  "Diwali, Christmas.",
		"holiday_list.json": `{"uploaded_by": "admin"}`,
		"unrelated.txt":     "Nothing to see here.",
	})

	results := b.Search("holiday")

	require.Len(t, results, 1)
	assert.Equal(t, "holiday_list.txt", results[0].Filename)
}

func TestSearchDomainBonuses(t *testing.T) {
	b := writeCorpus(t, map[string]string{
		"company_policy.txt":  "General conduct rules.",
		"employee_policy.txt": "Employee specific rules.",
	})

	results := b.Search("company rules")
	require.NotEmpty(t, results)
	assert.Equal(t, "company_policy.txt", results[0].Filename)
	// "company" word in filename +4, "rules" in content +2, +12 bonus
	assert.Equal(t, 18, results[0].Score)
}

func TestSearchMissingDirectory(t *testing.T) {
	b := NewBase("/nonexistent/corpus", logger.NewNopLogger())
	assert.Empty(t, b.Search("leave"))
}

func TestRelevantFileSingleWinner(t *testing.T) {
	b := writeCorpus(t, map[string]string{
		"holiday_list.txt": "Republic Day, Independence Day, Diwali.",
		"notes.txt":        "Misc notes about holiday parties and leave forms and attendance.",
	})

	outcome := b.RelevantFile("policy", "when is the next holiday")

	require.NotNil(t, outcome)
	assert.False(t, outcome.Ambiguous)
	require.NotNil(t, outcome.Document)
	assert.Equal(t, "holiday_list.txt", outcome.Document.Filename)
}

func TestRelevantFileAmbiguity(t *testing.T) {
	// Two files with near-identical relevance for the same query.
	b := writeCorpus(t, map[string]string{
		"leave_policy.txt":   "Annual leave rules and entitlement.",
		"leave_calendar.txt": "Leave schedule for the year.",
	})

	outcome := b.RelevantFile("leave", "leave")

	require.NotNil(t, outcome)
	assert.True(t, outcome.Ambiguous)
	assert.Contains(t, outcome.Options, "leave_policy")
	assert.Contains(t, outcome.Options, "leave_calendar")
	assert.NotEmpty(t, outcome.Clarification)
	assert.Nil(t, outcome.Document)
}

func TestRelevantFileNothingFound(t *testing.T) {
	b := writeCorpus(t, map[string]string{
		"notes.txt": "Totally unrelated content.",
	})

	assert.Nil(t, b.RelevantFile("payroll", "zzzz qqqq"))
}

func TestAmbiguityGapBoundary(t *testing.T) {
	// Scores 10 and 7 differ by 3 (< 5): ambiguous.
	assert.True(t, 10-7 < ambiguityGap)
	// Scores 10 and 3 differ by 7 (>= 5): single winner.
	assert.False(t, 10-3 < ambiguityGap)
}
