package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matelog/internal/i18n"
)

func newReleaseServer(t *testing.T, tag string, status int) (*github.Client, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/repos/thomas-vilte/matelog/releases/latest", r.URL.Path)
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": tag})
		}
	}))
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return client, &calls
}

func newTestChecker(t *testing.T, current string, client *github.Client, dir string, now time.Time) *VersionChecker {
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return NewVersionChecker(current, trans,
		WithGitHubClient(client),
		WithUpdateCacheDir(dir),
		WithCheckClock(func() time.Time { return now }),
	)
}

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{"patch update available", "v1.0.0", "v1.0.1", true},
		{"minor update without prefix", "0.1.0", "v0.2.0", true},
		{"same version", "v1.2.0", "1.2.0", false},
		{"older release", "v2.0.0", "v1.9.9", false},
		{"invalid tag", "v1.0.0", "nightly", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &VersionChecker{currentVersion: tt.current}
			assert.Equal(t, tt.expected, v.isUpdateAvailable(tt.latest))
		})
	}
}

func TestCheckForUpdates(t *testing.T) {
	color.NoColor = true
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("prints a notice and caches the tag", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "")
		dir := t.TempDir()
		client, calls := newReleaseServer(t, "v0.2.0", http.StatusOK)
		checker := newTestChecker(t, "0.1.0", client, dir, now)

		var out bytes.Buffer
		checker.CheckForUpdates(context.Background(), &out)

		assert.Contains(t, out.String(), "0.1.0")
		assert.Contains(t, out.String(), "v0.2.0")
		assert.Contains(t, out.String(), releasesURL)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))

		data, err := os.ReadFile(filepath.Join(dir, updateCacheFile))
		require.NoError(t, err)
		var cache UpdateCache
		require.NoError(t, json.Unmarshal(data, &cache))
		assert.Equal(t, "v0.2.0", cache.LatestKnown)
		assert.True(t, cache.LastCheck.Equal(now))
	})

	t.Run("fresh cache skips the request", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "")
		dir := t.TempDir()
		cache, _ := json.Marshal(UpdateCache{LastCheck: now.Add(-time.Hour), LatestKnown: "v0.3.0"})
		require.NoError(t, os.WriteFile(filepath.Join(dir, updateCacheFile), cache, 0644))
		client, calls := newReleaseServer(t, "v9.9.9", http.StatusOK)
		checker := newTestChecker(t, "0.1.0", client, dir, now)

		var out bytes.Buffer
		checker.CheckForUpdates(context.Background(), &out)

		assert.Contains(t, out.String(), "v0.3.0")
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("stale cache is refreshed", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "")
		dir := t.TempDir()
		cache, _ := json.Marshal(UpdateCache{LastCheck: now.Add(-48 * time.Hour), LatestKnown: "v0.1.0"})
		require.NoError(t, os.WriteFile(filepath.Join(dir, updateCacheFile), cache, 0644))
		client, calls := newReleaseServer(t, "v0.4.0", http.StatusOK)
		checker := newTestChecker(t, "0.1.0", client, dir, now)

		latest, ok := checker.LatestVersion(context.Background())

		assert.True(t, ok)
		assert.Equal(t, "v0.4.0", latest)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("up to date prints nothing", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "")
		client, _ := newReleaseServer(t, "v0.1.0", http.StatusOK)
		checker := newTestChecker(t, "0.1.0", client, t.TempDir(), now)

		var out bytes.Buffer
		checker.CheckForUpdates(context.Background(), &out)

		assert.Empty(t, out.String())
	})

	t.Run("api failure is silent", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "")
		client, _ := newReleaseServer(t, "", http.StatusInternalServerError)
		checker := newTestChecker(t, "0.1.0", client, t.TempDir(), now)

		var out bytes.Buffer
		checker.CheckForUpdates(context.Background(), &out)

		assert.Empty(t, out.String())
	})

	t.Run("disabled by environment", func(t *testing.T) {
		t.Setenv(disableUpdateEnv, "1")
		client, calls := newReleaseServer(t, "v0.2.0", http.StatusOK)
		checker := newTestChecker(t, "0.1.0", client, t.TempDir(), now)

		var out bytes.Buffer
		checker.CheckForUpdates(context.Background(), &out)

		assert.Empty(t, out.String())
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})
}
