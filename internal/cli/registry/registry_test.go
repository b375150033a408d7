package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matelog/internal/config"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(_ *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func newTestRegistry(t *testing.T) (*Registry, *config.Config, *i18n.Translations) {
	cfg := config.Default()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return NewRegistry(cfg, translations), cfg, translations
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)

		err := registry.Register("generate", &mockCommandFactory{name: "generate"})

		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "generate")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)
		factory := &mockCommandFactory{name: "generate"}

		_ = registry.Register("generate", factory)
		err := registry.Register("generate", factory)

		require.Error(t, err)
		assert.Equal(t, "Command 'generate' is already registered", err.Error())
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should keep registration order", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)
		for _, name := range []string{"generate", "config", "completion", "alpha"} {
			require.NoError(t, registry.Register(name, &mockCommandFactory{name: name}))
		}

		commands := registry.CreateCommands()

		require.Len(t, commands, 4)
		var names []string
		for _, cmd := range commands {
			names = append(names, cmd.Name)
		}
		assert.Equal(t, []string{"generate", "config", "completion", "alpha"}, names)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)

		assert.Empty(t, registry.CreateCommands())
	})
}

func TestNewRegistry(t *testing.T) {
	registry, cfg, translations := newTestRegistry(t)

	assert.NotNil(t, registry)
	assert.Empty(t, registry.factories)
	assert.Equal(t, cfg, registry.config)
	assert.Equal(t, translations, registry.t)
}
