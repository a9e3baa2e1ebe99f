package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genctl"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/errors"
	"github.com/agentstation/genctl/pkg/logging"
)

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestApp_Engine_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(&Config{}))
	require.NoError(t, err)

	const goroutines = 50
	var wg sync.WaitGroup
	engines := make([]*genctl.Engine, goroutines)
	errs := make([]error, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			engines[idx], errs[idx] = app.Engine()
		}(i)
	}
	wg.Wait()

	for i := range goroutines {
		require.NoError(t, errs[i])
		assert.Same(t, engines[0], engines[i])
	}
}

func TestApp_WithEngine(t *testing.T) {
	engine, err := genctl.New()
	require.NoError(t, err)

	app, err := New("dev", "", "", "", WithEngine(engine), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	got, err := app.Engine()
	require.NoError(t, err)
	assert.Same(t, engine, got)
}

func TestApp_Engine_CapabilitiesDir(t *testing.T) {
	dir := t.TempDir()
	table := "family: openai\nmodels:\n  - match: [\"gpt-5.2\"]\n    efforts: [low, medium, high]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai.yaml"), []byte(table), 0o644))

	app, err := New("dev", "", "", "", WithConfig(&Config{CapabilitiesDir: dir}))
	require.NoError(t, err)

	engine, err := app.Engine()
	require.NoError(t, err)
	assert.Equal(t, controls.EffortHigh,
		engine.NormalizeEffort(controls.EffortXHigh, capabilities.FamilyOpenAI, "gpt-5.2"))

	t.Run("broken table", func(t *testing.T) {
		bad := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(bad, "bad.yaml"), []byte("family: [\n"), 0o644))

		app, err := New("dev", "", "", "", WithConfig(&Config{CapabilitiesDir: bad}))
		require.NoError(t, err)
		_, err = app.Engine()
		var cfgErr *errors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("no tables", func(t *testing.T) {
		for _, dir := range []string{t.TempDir(), filepath.Join(t.TempDir(), "missing")} {
			app, err := New("dev", "", "", "", WithConfig(&Config{CapabilitiesDir: dir}))
			require.NoError(t, err)
			_, err = app.Engine()
			assert.True(t, errors.IsNotFound(err), dir)
		}
	})
}

func TestRootCommand(t *testing.T) {
	app, err := New("1.2.3", "abc", "today", "test", WithConfig(&Config{Provider: "anthropic"}))
	require.NoError(t, err)

	t.Run("draft uses the configured provider", func(t *testing.T) {
		root := app.createRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"draft", "-m", "claude-opus-4-6"})
		require.NoError(t, root.Execute())
		assert.JSONEq(t, `{}`, out.String())
	})

	t.Run("flags update config", func(t *testing.T) {
		root := app.createRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"version", "--format", "yaml", "--quiet"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "yaml", app.OutputFormat())
		assert.True(t, app.Config().Quiet)
	})

	t.Run("version subcommand", func(t *testing.T) {
		root := app.createRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"version"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "genctl version 1.2.3")
	})

	t.Run("commands are grouped", func(t *testing.T) {
		root := app.createRootCommand()
		for _, name := range []string{"draft", "apply", "roundtrip", "capabilities", "effort"} {
			sub, _, err := root.Find([]string{name})
			require.NoError(t, err, name)
			assert.NotEmpty(t, sub.GroupID, name)
		}
	})
}
