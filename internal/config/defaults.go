package config

const (
	defaultLang              = LangEN
	defaultComparePath       = "/compare/{from}...{to}"
	defaultIssueTrackerURL   = ""
	defaultDeployTagPrefix   = "deploy-"
	defaultVersionTagPattern = "v*"
	defaultCurrent           = "HEAD"
	defaultOutput            = "CHANGELOG.md"
	defaultFormat            = "markdown"
)

// GetDefaults returns the built-in configuration values keyed by config name.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"language":            defaultLang,
		"title":               "",
		"repository_url":      "",
		"compare_path":        defaultComparePath,
		"issue_tracker_url":   defaultIssueTrackerURL,
		"deploy_tag_prefix":   defaultDeployTagPrefix,
		"version_tag_pattern": defaultVersionTagPattern,
		"default_current":     defaultCurrent,
		"output":              defaultOutput,
		"format":              defaultFormat,
		"newest_first":        false,
	}
}

// Default returns a Config holding the built-in values.
func Default() *Config {
	return &Config{
		Language:          defaultLang,
		ComparePath:       defaultComparePath,
		IssueTrackerURL:   defaultIssueTrackerURL,
		DeployTagPrefix:   defaultDeployTagPrefix,
		VersionTagPattern: defaultVersionTagPattern,
		DefaultCurrent:    defaultCurrent,
		Output:            defaultOutput,
		Format:            defaultFormat,
	}
}
