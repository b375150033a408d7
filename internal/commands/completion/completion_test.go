package completion

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matelog/internal/config"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

func runCompletionTest(t *testing.T, args ...string) (string, error) {
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "matelog",
		Writer:   &out,
		Commands: []*cli.Command{NewCompletionCommandFactory().CreateCommand(trans, config.Default())},
	}
	err = app.Run(context.Background(), append([]string{"matelog", "completion"}, args...))
	return out.String(), err
}

func TestCompletionScripts(t *testing.T) {
	t.Run("bash", func(t *testing.T) {
		out, err := runCompletionTest(t, "bash")

		require.NoError(t, err)
		assert.Equal(t, bashCompletionScript, out)
		assert.Contains(t, out, "-F _matelog_bash_autocomplete matelog")
	})

	t.Run("zsh", func(t *testing.T) {
		out, err := runCompletionTest(t, "zsh")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "#compdef matelog"))
	})
}

func TestInstall(t *testing.T) {
	t.Run("appends to the rc file once", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("SHELL", "/bin/zsh")

		out, err := runCompletionTest(t, "install")
		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(home, ".zshrc"))

		_, err = runCompletionTest(t, "install")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(home, ".zshrc"))
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(data), installMarker))
		assert.Contains(t, string(data), "source <(matelog completion zsh)")
	})

	t.Run("unsupported shell", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("SHELL", "/usr/bin/fish")

		_, err := runCompletionTest(t, "install")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "/usr/bin/fish")
	})
}
