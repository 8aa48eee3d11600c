package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
	assert.Equal(t, fold.ModeIndent, cfg.FoldMode())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"

[editor]
tab_width = 2
history_depth = 20

[fold]
mode = "bracket"
async = true
debounce = "75ms"

[search]
history_size = 10
timeout = "1s"

[plugins.autosave]
interval = "30s"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, 20, cfg.Editor.HistoryDepth)
	assert.Equal(t, fold.ModeBracket, cfg.FoldMode())
	assert.True(t, cfg.Fold.Async)
	assert.Equal(t, 75*time.Millisecond, cfg.Fold.Debounce)
	assert.Equal(t, 10, cfg.Search.HistorySize)
	assert.Equal(t, time.Second, cfg.Search.Timeout)

	v, ok := cfg.PluginValue("autosave", "interval")
	require.True(t, ok)
	assert.Equal(t, "30s", v)
	_, ok = cfg.PluginValue("wordcount", "x")
	assert.False(t, ok)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -1
history_depth = 0

[fold]
mode = "syntax"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultHistoryDepth, cfg.Editor.HistoryDepth)
	assert.Equal(t, DefaultFoldMode, cfg.Fold.Mode)
}

func TestParseError(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = 2")
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	require.NotNil(t, cfg, "defaults are still returned")
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 2\n")
	flags := NewFlags("tidecore")
	args, err := flags.ParseFlags([]string{
		"-tabwidth", "8",
		"-fold", "bracket",
		"-log-tags", "core, find,",
		"-e", "s/a/b/g",
		"-e", "upper",
		"-w",
		"file.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, args)

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, "bracket", cfg.Fold.Mode)
	assert.Equal(t, []string{"core", "find"}, cfg.Logger.EnabledTags)
	assert.Equal(t, []string{"s/a/b/g", "upper"}, []string(flags.Commands))
	assert.True(t, *flags.Write)
	assert.False(t, *flags.View)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "[editor]\nsystem_clipboard = true\n")
	flags := NewFlags("tidecore")
	_, err := flags.ParseFlags(nil)
	require.NoError(t, err)

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.True(t, cfg.Editor.SystemClipboard)
}

func TestLoadStyles(t *testing.T) {
	path := writeConfig(t, `
[styles.selection]
bg = "#334455"
reverse = false

[styles.status]
fg = "white"
bold = true
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	sel, ok := cfg.Styles["selection"]
	require.True(t, ok)
	require.NotNil(t, sel.Bg)
	assert.Equal(t, "#334455", *sel.Bg)
	require.NotNil(t, sel.Reverse)
	assert.False(t, *sel.Reverse)
	assert.Nil(t, sel.Fg)

	status := cfg.Styles["status"]
	require.NotNil(t, status.Bold)
	assert.True(t, *status.Bold)
}
