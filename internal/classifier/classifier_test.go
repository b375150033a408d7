package classifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matelog/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	c := New()

	tests := map[string]struct {
		message  string
		expected models.Category
	}{
		"feature verb":                    {message: "add retry on timeout failure", expected: models.CategoryFeatures},
		"feature past tense":              {message: "Added dark mode toggle", expected: models.CategoryFeatures},
		"feature continuous with e stem":  {message: "creating invoices from drafts", expected: models.CategoryFeatures},
		"feature leading whitespace":      {message: "   implement export", expected: models.CategoryFeatures},
		"improvement verb":                {message: "update session handling", expected: models.CategoryImprovements},
		"improvement british spelling":    {message: "optimised query plan", expected: models.CategoryImprovements},
		"bug fix verb":                    {message: "fix null pointer", expected: models.CategoryBugFixes},
		"bug fix third person":            {message: "fixes broken link", expected: models.CategoryBugFixes},
		"bug fix corrected":               {message: "corrected typo in header", expected: models.CategoryBugFixes},
		"ci marker anywhere":              {message: "pipeline now runs k6 smoke", expected: models.CategoryCiCd},
		"ci substring inside a word":      {message: "document the decision", expected: models.CategoryCiCd},
		"refactor past tense":             {message: "cleaned up unused imports", expected: models.CategoryRefactor},
		"refactor rename":                 {message: "rename handler package", expected: models.CategoryRefactor},
		"no rule matches":                 {message: "bump go version", expected: models.CategoryOther},
		"single word without whitespace":  {message: "fix", expected: models.CategoryOther},
		"empty message":                   {message: "", expected: models.CategoryOther},
		"prefix that is not a whole verb": {message: "address review comments", expected: models.CategoryOther},
		"improvement wins over bug fix":   {message: "update error handling", expected: models.CategoryImprovements},
		"bug fix wins over ci":            {message: "fix build script", expected: models.CategoryBugFixes},
		"ci wins over refactor":           {message: "remove tests for old api", expected: models.CategoryCiCd},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.message))
		})
	}
}

func TestClassifier_ClassifyIsDeterministic(t *testing.T) {
	c := New()
	messages := []string{"add x", "fix y", "random", "deploy z", "move w", "tweak v"}

	for _, msg := range messages {
		first := c.Classify(msg)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(msg))
		}
		assert.Contains(t, models.Categories(), first)
	}
}

func TestNew(t *testing.T) {
	t.Run("appends catch-all rule", func(t *testing.T) {
		c := New(Rule{Category: models.CategoryFeatures, Pattern: regexp.MustCompile(`^feat`)})

		assert.Equal(t, models.CategoryFeatures, c.Classify("feat: x"))
		assert.Equal(t, models.CategoryOther, c.Classify("anything else"))
	})

	t.Run("does not mutate caller rules", func(t *testing.T) {
		rules := make([]Rule, 1, 4)
		rules[0] = Rule{Category: models.CategoryBugFixes, Pattern: regexp.MustCompile(`^fix`)}

		_ = New(rules...)

		assert.Len(t, rules, 1)
	})

	t.Run("default rules keep their order", func(t *testing.T) {
		rules := DefaultRules()
		require.Len(t, rules, len(models.Categories()))
		for i, category := range models.Categories() {
			assert.Equal(t, category, rules[i].Category)
		}
	})
}

func TestGroupByMessage(t *testing.T) {
	records := []models.CommitRecord{
		{TicketKey: "ABC-1", Message: "add a"},
		{TicketKey: "ABC-2", Message: "fix b"},
		{TicketKey: "ABC-3", Message: "add a"},
		{Message: ""},
	}

	groups := GroupByMessage(records)

	require.Len(t, groups, 3)
	assert.Equal(t, "add a", groups[0].Message)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "ABC-3", groups[0].Records[1].TicketKey)
	assert.Equal(t, "fix b", groups[1].Message)
	assert.Equal(t, "", groups[2].Message)
}

func TestClassifier_ClassifyRecords(t *testing.T) {
	c := New()
	records := []models.CommitRecord{
		{TicketKey: "ABC-1", Message: "add retry"},
		{TicketKey: "ABC-2", Message: "fix crash"},
		{TicketKey: "ABC-3", Message: "add retry"},
		{TicketKey: "ABC-4", Message: "add metrics"},
		{Message: "cleaned up unused imports"},
	}

	groups := c.ClassifyRecords(records)

	require.Len(t, groups[models.CategoryFeatures], 2)
	assert.Equal(t, "add retry", groups[models.CategoryFeatures][0].Message)
	assert.Len(t, groups[models.CategoryFeatures][0].Records, 2)
	assert.Equal(t, "add metrics", groups[models.CategoryFeatures][1].Message)
	require.Len(t, groups[models.CategoryBugFixes], 1)
	require.Len(t, groups[models.CategoryRefactor], 1)
	assert.Empty(t, groups[models.CategoryOther])

	seen := make(map[string]models.Category)
	for category, list := range groups {
		for _, g := range list {
			prev, dup := seen[g.Message]
			assert.False(t, dup, "message %q in %s and %s", g.Message, prev, category)
			seen[g.Message] = category
		}
	}
}
