package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/digest-agent/internal/config"
)

// newRootFlags returns a command carrying the root persistent flags,
// bound to the package variables, and resets them afterwards
func newRootFlags(t *testing.T) *cobra.Command {
	t.Helper()
	t.Cleanup(func() {
		rootConfigPath, rootVerbose = "", false
		rootDataDir, rootProvider, rootModel, rootOutput = "", "", "", ""
	})

	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&rootConfigPath, "config", "c", "", "")
	cmd.Flags().BoolVarP(&rootVerbose, "verbose", "v", false, "")
	cmd.Flags().StringVar(&rootDataDir, "data-dir", "", "")
	cmd.Flags().StringVar(&rootProvider, "provider", "", "")
	cmd.Flags().StringVar(&rootModel, "model", "", "")
	cmd.Flags().StringVarP(&rootOutput, "out", "o", "", "")
	return cmd
}

func clearDigestEnv(t *testing.T) {
	for _, key := range []string{config.EnvProvider, config.EnvModel, config.EnvDataDir, config.EnvOutput} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearDigestEnv(t)
	cmd := newRootFlags(t)

	got, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), got)
}

func TestLoadConfig_Layering(t *testing.T) {
	clearDigestEnv(t)
	path := filepath.Join(t.TempDir(), "digest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: gemini
model: gemini-2.5-pro
data_dir: from-file
output_path: from-file/index.html
history_limit: 20
`), 0644))

	t.Setenv(config.EnvModel, "gemini-from-env")
	t.Setenv(config.EnvDataDir, "from-env")

	cmd := newRootFlags(t)
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("data-dir", "from-flag"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	got, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "gemini", got.Provider)                   // file
	assert.Equal(t, "gemini-from-env", got.Model)             // env over file
	assert.Equal(t, "from-flag", got.DataDir)                 // flag over env
	assert.Equal(t, "from-file/index.html", got.OutputPath)   // file
	assert.Equal(t, 20, got.HistoryLimit)                     // file
	assert.Equal(t, config.DefaultSchedule, got.Schedule)     // default
	assert.Equal(t, config.DefaultLatestFile, got.LatestFile) // default
	assert.True(t, got.Verbose)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearDigestEnv(t)
	cmd := newRootFlags(t)
	require.NoError(t, cmd.Flags().Set("provider", "mistral"))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearDigestEnv(t)
	cmd := newRootFlags(t)
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "absent.json")))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"fetch", "render-html", "schedule", "history", "validate", "serve"} {
		assert.Contains(t, names, want)
	}
}

func TestLoadConfig_PromptFileCheckedLater(t *testing.T) {
	clearDigestEnv(t)
	path := filepath.Join(t.TempDir(), "digest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompt_file": "/nonexistent/prompt.txt"}`), 0644))

	cmd := newRootFlags(t)
	require.NoError(t, cmd.Flags().Set("config", path))

	got, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/nonexistent/prompt.txt", got.PromptFile)
}

func TestLoadConfig_ProviderCaseInsensitive(t *testing.T) {
	clearDigestEnv(t)
	t.Setenv(config.EnvProvider, "OpenAI")
	cmd := newRootFlags(t)

	got, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "openai", got.Provider)

	require.NoError(t, cmd.Flags().Set("provider", "GEMINI"))
	got, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "gemini", got.Provider)
}
