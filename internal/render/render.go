// Package render turns a grouped changelog into a text document.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatYAML, FormatJSON}
}

// ParseFormat accepts a format name and a few common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", errors.ErrUnknownFormat, name)
	}
}

// Links holds the URL bases used to build hyperlinks.
type Links struct {
	// RepositoryURL is the browser URL of the repository, e.g. https://github.com/org/repo.
	RepositoryURL string
	// ComparePath is appended to RepositoryURL; {from} and {to} are replaced by the tags.
	ComparePath string
	// IssueTrackerURL is prefixed to ticket keys, e.g. https://acme.atlassian.net/browse/.
	IssueTrackerURL string
}

// CompareURL returns the comparison link for a tag range, or "" without a repository URL.
func (l Links) CompareURL(from, to string) string {
	if l.RepositoryURL == "" {
		return ""
	}
	path := strings.NewReplacer("{from}", from, "{to}", to).Replace(l.ComparePath)
	return strings.TrimRight(l.RepositoryURL, "/") + path
}

// IssueURL returns the issue tracker link for a ticket key, or "" without a tracker URL.
func (l Links) IssueURL(key string) string {
	if l.IssueTrackerURL == "" {
		return ""
	}
	return l.IssueTrackerURL + key
}

type Renderer struct {
	links Links
	trans *i18n.Translations
	title string
}

type Option func(*Renderer)

// WithTranslations localizes the title and the category headings.
func WithTranslations(t *i18n.Translations) Option {
	return func(r *Renderer) {
		r.trans = t
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

func NewRenderer(links Links, opts ...Option) *Renderer {
	r := &Renderer{links: links}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the changelog in the requested format.
func (r *Renderer) Render(w io.Writer, format Format, cl models.Changelog) error {
	switch format {
	case FormatMarkdown:
		return r.Markdown(w, cl)
	case FormatYAML:
		return r.YAML(w, cl)
	case FormatJSON:
		return r.JSON(w, cl)
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnknownFormat, format)
	}
}

// RenderString is a convenience wrapper around Render.
func (r *Renderer) RenderString(format Format, cl models.Changelog) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, format, cl); err != nil {
		return "", err
	}
	return b.String(), nil
}

// YAML writes the changelog as a YAML document.
func (r *Renderer) YAML(w io.Writer, cl models.Changelog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.document(cl)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// JSON writes the changelog as indented JSON.
func (r *Renderer) JSON(w io.Writer, cl models.Changelog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.document(cl)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func (r *Renderer) titleText() string {
	if r.title != "" {
		return r.title
	}
	if r.trans != nil {
		return r.trans.GetMessage("changelog.title", 0, nil)
	}
	return "Changelog"
}

func (r *Renderer) categoryTitle(c models.Category) string {
	if r.trans != nil {
		return r.trans.GetMessage("changelog.category."+c.Key(), 0, nil)
	}
	return c.String()
}

func (r *Renderer) versionText(version string) string {
	if version == models.UnreleasedVersion && r.trans != nil {
		return r.trans.GetMessage("changelog.unreleased", 0, nil)
	}
	return version
}
