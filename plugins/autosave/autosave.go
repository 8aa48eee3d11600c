package autosave

import (
	"time"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
	defaultEdits    = 0 // 0 disables the edit-count trigger
)

// AutoSave saves the modified buffer once enough edits have accumulated
// or enough time has passed since the last save. Checks run on Idle
// events, so a save never lands in the middle of a multi-edit operation
// and always happens on the goroutine that owns the editor.
type AutoSave struct {
	api plugin.EditorAPI
	now func() time.Time

	// Configuration
	enabled  bool
	interval time.Duration
	edits    int

	// Runtime state
	pending   int // edits since the last save
	lastSave  time.Time
	subs      []event.Subscription
	saveFails int
}

func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
		edits:    defaultEdits,
		now:      time.Now,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and subscribes to editor events if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.readConfig()
	logger.Infof("%s initialized. Enabled: %v, Interval: %v, Edits: %d", p.Name(), p.enabled, p.interval, p.edits)
	if !p.enabled {
		return nil
	}

	p.lastSave = p.now()
	p.subs = []event.Subscription{
		api.SubscribeEvent(event.TypeBufferModified, p.onModified),
		api.SubscribeEvent(event.TypeBufferSaved, p.onSaved),
		api.SubscribeEvent(event.TypeBufferLoaded, p.onSaved),
		api.SubscribeEvent(event.TypeIdle, p.onIdle),
	}
	return nil
}

func (p *AutoSave) readConfig() {
	name := p.Name()

	if v, ok := p.api.GetPluginConfigValue(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}

	if v, ok := p.api.GetPluginConfigValue(name, "interval"); ok {
		s, isStr := v.(string)
		if !isStr {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", name, v, p.interval)
		} else if d, err := time.ParseDuration(s); err != nil || d <= 0 {
			logger.Warnf("%s: Invalid 'interval' config ('%s'), using default (%v)", name, s, p.interval)
		} else {
			p.interval = d
		}
	}

	if v, ok := p.api.GetPluginConfigValue(name, "edits"); ok {
		// TOML integers decode as int64.
		switch n := v.(type) {
		case int64:
			p.edits = int(n)
		case int:
			p.edits = n
		default:
			logger.Warnf("%s: Invalid type for 'edits' config (%T), using default (%d)", name, v, p.edits)
		}
		if p.edits < 0 {
			p.edits = defaultEdits
		}
	}
}

// Shutdown saves outstanding edits and drops the subscriptions.
func (p *AutoSave) Shutdown() error {
	if !p.enabled || p.api == nil {
		return nil
	}
	if p.pending > 0 {
		p.save()
	}
	for _, sub := range p.subs {
		p.api.UnsubscribeEvent(sub)
	}
	p.subs = nil
	return nil
}

func (p *AutoSave) onModified(event.Event) bool {
	p.pending++
	return false
}

func (p *AutoSave) onSaved(event.Event) bool {
	p.pending = 0
	p.lastSave = p.now()
	return false
}

func (p *AutoSave) onIdle(event.Event) bool {
	if p.pending == 0 {
		return false
	}
	byCount := p.edits > 0 && p.pending >= p.edits
	byTime := p.now().Sub(p.lastSave) >= p.interval
	if byCount || byTime {
		p.save()
	}
	return false
}

// save writes the buffer if it is modified and has a name.
func (p *AutoSave) save() {
	if !p.api.IsBufferModified() {
		p.pending = 0
		return
	}
	filePath := p.api.GetBufferFilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}

	logger.Infof("%s: Auto-saving modified buffer: %s", p.Name(), filePath)
	if err := p.api.SaveBuffer(); err != nil {
		p.saveFails++
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		if p.saveFails == 1 {
			p.api.SetStatusMessage("%s: auto-save failed: %v", p.Name(), err)
		}
		// Retry after another full interval instead of on every idle.
		p.lastSave = p.now()
		return
	}
	p.saveFails = 0
}
