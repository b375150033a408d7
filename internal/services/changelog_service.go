package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thomas-vilte/matelog/internal/classifier"
	"github.com/thomas-vilte/matelog/internal/config"
	domainErrors "github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/grouper"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/logger"
	"github.com/thomas-vilte/matelog/internal/models"
	"github.com/thomas-vilte/matelog/internal/parser"
	"github.com/thomas-vilte/matelog/internal/render"
	"golang.org/x/mod/semver"
)

const dateLayout = "2006-01-02"

// changelogGitService defines only the methods needed by ChangelogService.
type changelogGitService interface {
	CheckEnvironment(ctx context.Context) error
	RefExists(ctx context.Context, ref string) (bool, error)
	CommitHash(ctx context.Context, ref string) (string, error)
	IsTag(ctx context.Context, name string) bool
	ListTags(ctx context.Context, prefix, reachableFrom string) ([]string, error)
	CommitCount(ctx context.Context, from, to string) (int, error)
	LogSubjects(ctx context.Context, from, to string, newestFirst bool) ([]string, error)
	TagDate(ctx context.Context, ref string) (string, error)
	NearestVersionTag(ctx context.Context, ref, pattern string) (string, error)
	RepositoryURL(ctx context.Context) (string, error)
}

// GenerateRequest carries the invocation inputs of a changelog run.
// Empty references are resolved from the configuration and the tag history.
type GenerateRequest struct {
	Current  string
	Previous string
	Release  bool
}

type ChangelogService struct {
	git        changelogGitService
	classifier *classifier.Classifier
	config     *config.Config
	trans      *i18n.Translations
	now        func() time.Time
}

type ChangelogOption func(*ChangelogService)

func WithChangelogConfig(cfg *config.Config) ChangelogOption {
	return func(s *ChangelogService) {
		s.config = cfg
	}
}

func WithClassifier(c *classifier.Classifier) ChangelogOption {
	return func(s *ChangelogService) {
		s.classifier = c
	}
}

func WithChangelogTranslations(t *i18n.Translations) ChangelogOption {
	return func(s *ChangelogService) {
		s.trans = t
	}
}

// WithClock replaces time.Now, which dates unreleased changelogs.
func WithClock(now func() time.Time) ChangelogOption {
	return func(s *ChangelogService) {
		s.now = now
	}
}

func NewChangelogService(gitSvc changelogGitService, opts ...ChangelogOption) *ChangelogService {
	s := &ChangelogService{
		git:        gitSvc,
		classifier: classifier.New(),
		config:     config.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveRange validates the environment and resolves the reference range and
// release metadata of req. Every reference must exist in the repository.
func (s *ChangelogService) ResolveRange(ctx context.Context, req GenerateRequest) (models.ReleaseMetadata, error) {
	log := logger.FromContext(ctx)

	if err := s.git.CheckEnvironment(ctx); err != nil {
		return models.ReleaseMetadata{}, err
	}

	current := req.Current
	if current == "" {
		current = s.config.DefaultCurrent
	}
	if err := s.ensureRef(ctx, current); err != nil {
		return models.ReleaseMetadata{}, err
	}

	previous := req.Previous
	if previous == "" {
		var err error
		previous, err = s.previousTag(ctx, current)
		if err != nil {
			return models.ReleaseMetadata{}, err
		}
		log.Info("previous reference resolved from tags", "previous", previous, "prefix", s.config.DeployTagPrefix)
	} else if err := s.ensureRef(ctx, previous); err != nil {
		return models.ReleaseMetadata{}, err
	}

	meta := models.ReleaseMetadata{
		FromTag:     previous,
		ToTag:       current,
		Version:     models.UnreleasedVersion,
		ReleaseDate: s.today(),
	}

	if req.Release {
		version, date, err := s.releaseVersion(ctx, current)
		if err != nil {
			return models.ReleaseMetadata{}, err
		}
		meta.Version = version
		meta.ReleaseDate = date
	}

	log.Debug("range resolved",
		"from", meta.FromTag,
		"to", meta.ToTag,
		"version", meta.Version,
		"date", meta.ReleaseDate)

	return meta, nil
}

// Build runs the changelog pipeline for req: resolve the range, read the
// commit subjects, parse, classify and group them.
// It returns ErrNoCommits when the range is empty.
func (s *ChangelogService) Build(ctx context.Context, req GenerateRequest) (*models.Changelog, error) {
	log := logger.FromContext(ctx)

	meta, err := s.ResolveRange(ctx, req)
	if err != nil {
		return nil, err
	}

	count, err := s.git.CommitCount(ctx, meta.FromTag, meta.ToTag)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domainErrors.ErrNoCommits.WithContext("ref", meta.FromTag+".."+meta.ToTag)
	}

	subjects, err := s.git.LogSubjects(ctx, meta.FromTag, meta.ToTag, s.config.NewestFirst)
	if err != nil {
		return nil, err
	}
	log.Info("commits read", "count", len(subjects))

	cl := BuildChangelog(s.classifier, meta, subjects)

	log.Info("changelog built", "sections", len(cl.Sections))
	return cl, nil
}

// BuildChangelog runs parse, classify and group over subjects without any git access.
func BuildChangelog(c *classifier.Classifier, meta models.ReleaseMetadata, subjects []string) *models.Changelog {
	records := parser.ParseLines(subjects)
	return &models.Changelog{
		Metadata: meta,
		Sections: grouper.Group(c.ClassifyRecords(records)),
	}
}

// Render formats cl. The repository URL falls back to the origin remote when
// the configuration does not set one.
func (s *ChangelogService) Render(ctx context.Context, cl *models.Changelog, format render.Format) (string, error) {
	links := s.config.Links()
	if links.RepositoryURL == "" {
		url, err := s.git.RepositoryURL(ctx)
		if err != nil {
			logger.Debug(ctx, "rendering without compare link", "error", err)
		} else {
			links.RepositoryURL = url
		}
	}

	renderer := render.NewRenderer(links,
		render.WithTranslations(s.trans),
		render.WithTitle(s.config.Title),
	)
	return renderer.RenderString(format, *cl)
}

// Write stores content at path. With prepend, a markdown changelog already
// at path keeps its title and older entries below the new version section.
func (s *ChangelogService) Write(ctx context.Context, path, content string, prepend bool) error {
	log := logger.FromContext(ctx)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domainErrors.ErrWriteOutput.WithError(err).WithContext("path", path)
		}
	}

	if prepend {
		merged, err := prependToChangelog(path, content)
		if err != nil {
			return domainErrors.ErrWriteOutput.WithError(err).WithContext("path", path)
		}
		content = merged
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return domainErrors.ErrWriteOutput.WithError(err).WithContext("path", path)
	}

	log.Info("changelog written", "file", path, "size", len(content))
	return nil
}

func (s *ChangelogService) ensureRef(ctx context.Context, ref string) error {
	exists, err := s.git.RefExists(ctx, ref)
	if err != nil {
		return domainErrors.ErrReferenceNotFound.WithError(err).WithContext("ref", ref)
	}
	if !exists {
		return domainErrors.ErrReferenceNotFound.WithContext("ref", ref)
	}
	return nil
}

// previousTag picks the newest deploy tag reachable from current that points
// at a different commit than current.
func (s *ChangelogService) previousTag(ctx context.Context, current string) (string, error) {
	tags, err := s.git.ListTags(ctx, s.config.DeployTagPrefix, current)
	if err != nil {
		return "", err
	}

	currentHash, err := s.git.CommitHash(ctx, current)
	if err != nil {
		return "", err
	}

	for i := len(tags) - 1; i >= 0; i-- {
		if tags[i] == current {
			continue
		}
		hash, err := s.git.CommitHash(ctx, tags[i])
		if err != nil {
			return "", err
		}
		if hash == currentHash {
			logger.Debug(ctx, "skipping tag on the current commit", "ref", tags[i])
			continue
		}
		return tags[i], nil
	}
	return "", domainErrors.ErrNoPreviousTag.WithContext("prefix", s.config.DeployTagPrefix)
}

func (s *ChangelogService) releaseVersion(ctx context.Context, current string) (string, string, error) {
	version := current
	tag, err := s.git.NearestVersionTag(ctx, current, s.config.VersionTagPattern)
	if err != nil {
		return "", "", err
	}
	if tag != "" {
		version = normalizeVersion(tag)
	}

	if !s.git.IsTag(ctx, current) {
		return version, s.today(), nil
	}

	date, err := s.git.TagDate(ctx, current)
	if err != nil {
		return "", "", err
	}
	return version, date, nil
}

func (s *ChangelogService) today() string {
	return s.now().Format(dateLayout)
}

// normalizeVersion returns the canonical semver form of tag (v1.2 -> v1.2.0),
// or tag unchanged when it is not a semantic version.
func normalizeVersion(tag string) string {
	v := tag
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return tag
	}
	return semver.Canonical(v)
}

func prependToChangelog(filename, newContent string) (string, error) {
	content, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return newContent, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}

	entry := strings.TrimSpace(stripTitle(newContent))
	current := string(content)
	var sb strings.Builder

	if idx := strings.Index(current, "\n## "); idx != -1 {
		sb.WriteString(strings.TrimSpace(current[:idx]))
		sb.WriteString("\n\n")
		sb.WriteString(entry)
		sb.WriteString("\n")
		sb.WriteString(current[idx:])
	} else if strings.HasPrefix(current, "# ") {
		sb.WriteString(strings.TrimSpace(current))
		sb.WriteString("\n\n")
		sb.WriteString(entry)
		sb.WriteString("\n")
	} else {
		sb.WriteString(strings.TrimSpace(newContent))
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(current))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func stripTitle(content string) string {
	if !strings.HasPrefix(content, "# ") {
		return content
	}
	if idx := strings.Index(content, "\n"); idx != -1 {
		return content[idx+1:]
	}
	return ""
}
