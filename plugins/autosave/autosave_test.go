package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newAutoSave(t *testing.T, api *plugintest.API) (*AutoSave, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := New().(*AutoSave)
	p.now = c.now
	require.NoError(t, p.Initialize(api))
	return p, c
}

func edit(t *testing.T, api *plugintest.API) {
	t.Helper()
	_, err := api.ReplaceRange(0, 0, "x")
	require.NoError(t, err)
}

func idle(api *plugintest.API) { api.DispatchEvent(event.TypeIdle, nil) }

func TestDisabledByDefault(t *testing.T) {
	api := plugintest.New("")
	p, _ := newAutoSave(t, api)
	assert.False(t, p.enabled)

	edit(t, api)
	idle(api)
	assert.Equal(t, 0, api.Saves)
}

func TestSaveAfterEditCount(t *testing.T) {
	api := plugintest.New("")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "edits": int64(3), "interval": "1h"},
	}
	_, _ = newAutoSave(t, api)

	edit(t, api)
	edit(t, api)
	idle(api)
	assert.Equal(t, 0, api.Saves)

	edit(t, api)
	assert.Equal(t, 0, api.Saves, "no save until the operation is idle")
	idle(api)
	assert.Equal(t, 1, api.Saves)
	assert.False(t, api.Modified)
}

func TestSaveAfterInterval(t *testing.T) {
	api := plugintest.New("")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "interval": "30s"},
	}
	_, c := newAutoSave(t, api)

	edit(t, api)
	c.advance(10 * time.Second)
	idle(api)
	assert.Equal(t, 0, api.Saves)

	c.advance(20 * time.Second)
	idle(api)
	assert.Equal(t, 1, api.Saves)

	// Nothing pending: no further saves.
	c.advance(time.Minute)
	idle(api)
	assert.Equal(t, 1, api.Saves)
}

func TestManualSaveResetsCounters(t *testing.T) {
	api := plugintest.New("")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "edits": int64(2), "interval": "1h"},
	}
	_, _ = newAutoSave(t, api)

	edit(t, api)
	require.NoError(t, api.SaveBuffer())
	edit(t, api)
	idle(api)
	assert.Equal(t, 1, api.Saves, "only the manual save")
}

func TestUnnamedBufferIsSkipped(t *testing.T) {
	api := plugintest.New("")
	api.Path = ""
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "edits": int64(1)},
	}
	_, _ = newAutoSave(t, api)

	edit(t, api)
	idle(api)
	assert.Equal(t, 0, api.Saves)
}

func TestSaveFailureReportedOnce(t *testing.T) {
	api := plugintest.New("")
	api.SaveErr = errors.New("disk full")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "interval": "1s"},
	}
	_, c := newAutoSave(t, api)

	edit(t, api)
	c.advance(time.Second)
	idle(api)
	c.advance(time.Second)
	idle(api)
	assert.Equal(t, []string{"autosave: auto-save failed: disk full"}, api.Messages)
}

func TestShutdownFlushesAndUnsubscribes(t *testing.T) {
	api := plugintest.New("")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": true, "interval": "1h"},
	}
	p, _ := newAutoSave(t, api)

	edit(t, api)
	require.NoError(t, p.Shutdown())
	assert.Equal(t, 1, api.Saves)

	edit(t, api)
	idle(api)
	assert.Equal(t, 0, p.pending, "handlers removed")
}

func TestInvalidConfigKeepsDefaults(t *testing.T) {
	api := plugintest.New("")
	api.Config = map[string]map[string]interface{}{
		"autosave": {"enabled": "yes", "interval": "soon", "edits": "many"},
	}
	p, _ := newAutoSave(t, api)
	assert.False(t, p.enabled)
	assert.Equal(t, defaultInterval, p.interval)
	assert.Equal(t, defaultEdits, p.edits)
}
