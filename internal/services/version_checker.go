package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-github/github"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/logger"
	"golang.org/x/mod/semver"
)

const (
	releaseOwner        = "thomas-vilte"
	releaseRepo         = "matelog"
	releasesURL         = "https://github.com/thomas-vilte/matelog/releases/latest"
	updateCheckInterval = 24 * time.Hour
	updateCheckTimeout  = 2 * time.Second
	updateCacheFile     = "last_update_check.json"
	disableUpdateEnv    = "MATELOG_DISABLE_UPDATE_CHECK"
)

// VersionChecker tells the user when a newer matelog release is published.
// The latest tag is fetched from GitHub at most once per day.
type VersionChecker struct {
	currentVersion string
	trans          *i18n.Translations
	client         *github.Client
	cacheDir       string
	now            func() time.Time
}

type UpdateCache struct {
	LastCheck   time.Time `json:"last_check"`
	LatestKnown string    `json:"latest_known"`
}

type VersionCheckerOption func(*VersionChecker)

func WithGitHubClient(client *github.Client) VersionCheckerOption {
	return func(v *VersionChecker) {
		v.client = client
	}
}

// WithUpdateCacheDir replaces ~/.matelog as the location of the check cache.
func WithUpdateCacheDir(dir string) VersionCheckerOption {
	return func(v *VersionChecker) {
		v.cacheDir = dir
	}
}

func WithCheckClock(now func() time.Time) VersionCheckerOption {
	return func(v *VersionChecker) {
		v.now = now
	}
}

func NewVersionChecker(version string, trans *i18n.Translations, opts ...VersionCheckerOption) *VersionChecker {
	v := &VersionChecker{
		currentVersion: version,
		trans:          trans,
		client:         github.NewClient(nil),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CheckForUpdates prints a notice to w when a newer release exists.
// Failures are only logged; the check never fails a run.
func (v *VersionChecker) CheckForUpdates(ctx context.Context, w io.Writer) {
	if os.Getenv(disableUpdateEnv) != "" {
		return
	}

	latest, ok := v.LatestVersion(ctx)
	if ok && v.isUpdateAvailable(latest) {
		v.printUpdateNotification(w, latest)
	}
}

// LatestVersion returns the newest published tag, served from the cache
// while it is younger than a day.
func (v *VersionChecker) LatestVersion(ctx context.Context) (string, bool) {
	cache, err := v.loadCache()
	if err == nil && v.now().Sub(cache.LastCheck) < updateCheckInterval {
		return cache.LatestKnown, cache.LatestKnown != ""
	}

	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	release, _, err := v.client.Repositories.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		logger.Debug(ctx, "update check failed", "error", err)
		return "", false
	}
	latest := release.GetTagName()

	if err := v.saveCache(UpdateCache{LastCheck: v.now(), LatestKnown: latest}); err != nil {
		logger.Debug(ctx, "could not save update check", "error", err)
	}
	return latest, latest != ""
}

func (v *VersionChecker) isUpdateAvailable(latest string) bool {
	current := v.currentVersion
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return false
	}

	return semver.Compare(latest, current) > 0
}

func (v *VersionChecker) printUpdateNotification(w io.Writer, latest string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	msgAvailable := v.trans.GetMessage("update.available", 0, map[string]interface{}{
		"Current": v.currentVersion,
		"Latest":  green(latest),
	})
	msgDownload := v.trans.GetMessage("update.download", 0, map[string]interface{}{
		"URL": releasesURL,
	})

	_, _ = fmt.Fprintf(w, "\n%s %s\n", yellow("│"), msgAvailable)
	_, _ = fmt.Fprintf(w, "%s %s\n\n", yellow("│"), msgDownload)
}

func (v *VersionChecker) getCacheDir() (string, error) {
	cacheDir := v.cacheDir
	if cacheDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheDir = filepath.Join(homeDir, ".matelog")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", err
	}
	return cacheDir, nil
}

func (v *VersionChecker) loadCache() (UpdateCache, error) {
	cacheDir, err := v.getCacheDir()
	if err != nil {
		return UpdateCache{}, err
	}

	data, err := os.ReadFile(filepath.Join(cacheDir, updateCacheFile))
	if err != nil {
		return UpdateCache{}, err
	}

	var cache UpdateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return UpdateCache{}, err
	}
	return cache, nil
}

func (v *VersionChecker) saveCache(cache UpdateCache) error {
	cacheDir, err := v.getCacheDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cacheDir, updateCacheFile), data, 0644)
}
