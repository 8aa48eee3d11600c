package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/plugin"
	"github.com/bethropolis/tidecore/plugins/autosave"
	"github.com/bethropolis/tidecore/plugins/wordcount"
)

// builtinPlugins are registered with every session, in this order.
var builtinPlugins = []func() plugin.Plugin{
	wordcount.New,
	autosave.New,
}

// registerPlugins registers the built-in plugins. A plugin that fails to
// register is skipped; the returned error joins every failure.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return errors.New("plugin manager is nil")
	}
	var errs []error
	for _, ctor := range builtinPlugins {
		p := ctor()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			errs = append(errs, fmt.Errorf("register plugin '%s': %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
