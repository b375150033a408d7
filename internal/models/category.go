package models

import "fmt"

// Category is the change type a commit message is classified into.
type Category int

const (
	CategoryFeatures Category = iota
	CategoryImprovements
	CategoryBugFixes
	CategoryCiCd
	CategoryRefactor
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryFeatures:     "Features",
	CategoryImprovements: "Improvements",
	CategoryBugFixes:     "Bug Fixes",
	CategoryCiCd:         "CI/CD",
	CategoryRefactor:     "Refactor",
	CategoryOther:        "Other",
}

var categoryKeys = map[Category]string{
	CategoryFeatures:     "features",
	CategoryImprovements: "improvements",
	CategoryBugFixes:     "bug_fixes",
	CategoryCiCd:         "ci_cd",
	CategoryRefactor:     "refactor",
	CategoryOther:        "other",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFeatures,
		CategoryImprovements,
		CategoryBugFixes,
		CategoryCiCd,
		CategoryRefactor,
		CategoryOther,
	}
}

// String returns the display name used as section heading.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Key returns a stable identifier, used for translation IDs and encoded output.
func (c Category) Key() string {
	if key, ok := categoryKeys[c]; ok {
		return key
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Key()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for cat, key := range categoryKeys {
		if key == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(text))
}
