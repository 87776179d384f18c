package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so the user's own config
// file cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Empty(t, cfg.Shell)
	assert.Equal(t, "{symbol}", cfg.Template.Name)
	assert.Equal(t, "↑{value}", cfg.Template.Ahead)
	assert.Equal(t, "git", cfg.VCS.GitBinary)
	assert.Equal(t, "hg", cfg.VCS.HgBinary)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VCP_FORMAT", "{branch}")
	t.Setenv("VCP_TEMPLATE_BRANCH", "[{value}]")
	t.Setenv("VCP_COLORS_BRANCH", "#ff00ff")
	t.Setenv("VCP_VCS_GIT_BINARY", "/usr/local/bin/git")
	t.Setenv("VCP_TEMPLATE_UNTRACKED", "")
	t.Setenv("VCP_COLOR", "NEVER")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "{branch}", cfg.Format)
	assert.Equal(t, "[{value}]", cfg.Template.Branch)
	assert.Equal(t, "#ff00ff", cfg.Colors.Branch)
	assert.Equal(t, "/usr/local/bin/git", cfg.VCS.GitBinary)
	assert.Empty(t, cfg.Template.Untracked)
	assert.Equal(t, ColorNever, cfg.Color)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "vcprompt.toml")
	content := `format = "{name} {branch}"
color = "always"

[template]
branch = "<{value}>"

[vcs]
hg_binary = "chg"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "{name} {branch}", cfg.Format)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, "<{value}>", cfg.Template.Branch)
	assert.Equal(t, "↓{value}", cfg.Template.Behind, "unset keys keep defaults")
	assert.Equal(t, "chg", cfg.VCS.HgBinary)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "vcprompt.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"{branch}\"\n"), 0644))
	t.Setenv("VCP_FORMAT", "{name}")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "{name}", cfg.Format)
}

func TestLoad_DefaultPathUsedWhenPresent(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "vcprompt", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("prefix = \"(\"\nsuffix = \")\"\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "(", cfg.Prefix)
	assert.Equal(t, ")", cfg.Suffix)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidColorMode(t *testing.T) {
	isolate(t)
	t.Setenv("VCP_COLOR", "sometimes")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidColorMode)
}

func TestLoad_Shell(t *testing.T) {
	isolate(t)
	t.Setenv("VCP_SHELL", "Zsh")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "zsh", cfg.Shell)

	t.Setenv("VCP_SHELL", "fish")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidShell)
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Format = "{branch}{staged}"
	cfg.Colors.Staged = "#00ff00"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "VCP_FORMAT", EnvName("format"))
	assert.Equal(t, "VCP_TEMPLATE_BRANCH", EnvName("template.branch"))
	assert.Equal(t, "VCP_VCS_GIT_BINARY", EnvName("vcs.git_binary"))
}

func TestGetConfigPath(t *testing.T) {
	home := isolate(t)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "vcprompt", "config.toml"), path)
}
