// Package classifier assigns commit messages to changelog categories.
package classifier

import (
	"regexp"
	"strings"

	"github.com/thomas-vilte/matelog/internal/models"
)

// Rule pairs a category with the pattern a lower-cased message must match.
type Rule struct {
	Category models.Category
	Pattern  *regexp.Regexp
}

var (
	featureVerbs = []string{
		"implement", "introduce", "new", "feature", "upgrade", "add", "use", "create",
	}
	improvementVerbs = []string{
		"improve", "set", "increase", "adjust", "change", "enable", "disable", "update",
		"replace", "check", "show", "modernize", "optimise", "optimize", "tweak", "try",
		"enhance", "reduce", "revise", "rework", "avoid", "streamline", "simplify", "modify",
	}
	bugFixVerbs = []string{
		"fix", "bug", "log", "error", "solve", "resolve", "corrected", "patch", "revert",
		"restore", "repair", "handle", "prevent", "crash", "leak", "fault", "broken",
		"hang", "stall", "fail", "issue",
	}
	ciCdMarkers = []string{
		"ci", "build", "deploy", "k6", "tests",
	}
	refactorVerbs = []string{
		"refactor", "remove", "cleanup", "clean", "move", "rename", "restructure",
		"reorganize", "eliminate",
	}
)

// defaultRules is evaluated top to bottom; the first match wins.
var defaultRules = []Rule{
	{Category: models.CategoryFeatures, Pattern: leadingVerb(featureVerbs)},
	{Category: models.CategoryImprovements, Pattern: leadingVerb(improvementVerbs)},
	{Category: models.CategoryBugFixes, Pattern: leadingVerb(bugFixVerbs)},
	{Category: models.CategoryCiCd, Pattern: containsAny(ciCdMarkers)},
	{Category: models.CategoryRefactor, Pattern: leadingVerb(refactorVerbs)},
	{Category: models.CategoryOther, Pattern: regexp.MustCompile(`.*`)},
}

// DefaultRules returns a copy of the built-in rule list.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// Classifier maps message text to exactly one category.
type Classifier struct {
	rules []Rule
}

// New builds a Classifier from rules. Without rules the built-in list is used.
// A catch-all Other rule is appended when the list does not end with one.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	} else {
		rules = append([]Rule(nil), rules...)
	}
	last := rules[len(rules)-1]
	if last.Category != models.CategoryOther || !last.Pattern.MatchString("") {
		rules = append(rules, Rule{Category: models.CategoryOther, Pattern: regexp.MustCompile(`.*`)})
	}
	return &Classifier{rules: rules}
}

// Classify returns the category of the first rule matching the lower-cased message.
func (c *Classifier) Classify(message string) models.Category {
	text := strings.ToLower(message)
	for _, rule := range c.rules {
		if rule.Pattern.MatchString(text) {
			return rule.Category
		}
	}
	return models.CategoryOther
}

// GroupByMessage partitions records by exact Message text, in first-seen order.
func GroupByMessage(records []models.CommitRecord) []models.MessageGroup {
	index := make(map[string]int)
	groups := make([]models.MessageGroup, 0)

	for _, record := range records {
		i, ok := index[record.Message]
		if !ok {
			i = len(groups)
			index[record.Message] = i
			groups = append(groups, models.MessageGroup{Message: record.Message})
		}
		groups[i].Records = append(groups[i].Records, record)
	}
	return groups
}

// ClassifyRecords groups records by message and classifies each distinct message once.
func (c *Classifier) ClassifyRecords(records []models.CommitRecord) models.CategorizedGroups {
	result := make(models.CategorizedGroups)
	for _, group := range GroupByMessage(records) {
		category := c.Classify(group.Message)
		result[category] = append(result[category], group)
	}
	return result
}

// leadingVerb matches a message starting with one of words, tolerating
// inflection suffixes, followed by whitespace.
func leadingVerb(words []string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*(?:` + strings.Join(inflect(words), "|") + `)\s`)
}

func containsAny(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `)`)
}

func inflect(words []string) []string {
	alternatives := make([]string, 0, len(words)*2)
	for _, w := range words {
		alternatives = append(alternatives, regexp.QuoteMeta(w)+`(?:e|s|es|d|ed|ing)?`)
		if stem, ok := strings.CutSuffix(w, "e"); ok && stem != "" {
			alternatives = append(alternatives, regexp.QuoteMeta(stem)+`(?:es|ed|ing)`)
		}
	}
	return alternatives
}
