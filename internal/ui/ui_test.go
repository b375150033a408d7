package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/i18n"
)

func init() {
	color.NoColor = true
}

func TestHandleAppErrorTo(t *testing.T) {
	t.Run("app error with suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrReferenceNotFound.WithContext("ref", "deploy-9")

		HandleAppErrorTo(&buf, fmt.Errorf("resolving: %w", err), nil)

		out := buf.String()
		assert.Contains(t, out, "❌ REFERENCE: Reference not found in repository")
		assert.Contains(t, out, "Ref: deploy-9")
		assert.Contains(t, out, "💡 Try: List available tags: git tag -l\n")
		assert.Contains(t, out, "       Fetch remote tags: git fetch --tags\n")
	})

	t.Run("details from the wrapped error", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppErrorTo(&buf, domainErrors.ErrCountCommits.WithError(errors.New("exit status 128")), nil)

		assert.Contains(t, buf.String(), "Details: exit status 128")
		assert.NotContains(t, buf.String(), "Try")
	})

	t.Run("translated suggestion prefix", func(t *testing.T) {
		trans, err := i18n.NewTranslations("es", "")
		require.NoError(t, err)
		var buf bytes.Buffer

		HandleAppErrorTo(&buf, domainErrors.ErrGitNotInstalled, trans)

		assert.Contains(t, buf.String(), "💡 Probá: ")
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppErrorTo(&buf, errors.New("boom"), nil)

		assert.Equal(t, "❌ boom\n", buf.String())
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppErrorTo(&buf, nil, nil)
		assert.Empty(t, buf.String())
	})
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer

	PrintSuccess(&buf, "written")
	PrintInfo(&buf, "nothing to do")
	PrintWarning(&buf, "careful")
	PrintKeyValue(&buf, "format", "markdown")

	out := buf.String()
	assert.Contains(t, out, "written\n")
	assert.Contains(t, out, "nothing to do\n")
	assert.Contains(t, out, "careful\n")
	assert.Contains(t, out, "   format: markdown\n")
}

func TestWithSpinner(t *testing.T) {
	original := isTerminal
	isTerminal = func(*os.File) bool { return false }
	defer func() { isTerminal = original }()

	called := false
	err := WithSpinner("reading commits", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	sentinel := errors.New("git failed")
	err = WithSpinner("reading commits", func() error { return sentinel })
	assert.Equal(t, sentinel, err)
}
