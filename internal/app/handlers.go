package app

import (
	"github.com/dshills/jot/internal/dispatcher"
	"github.com/dshills/jot/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/jot/internal/dispatcher/handlers/cursor"
	editorhandler "github.com/dshills/jot/internal/dispatcher/handlers/editor"
	integrationhandler "github.com/dshills/jot/internal/dispatcher/handlers/integration"
	modehandler "github.com/dshills/jot/internal/dispatcher/handlers/mode"
)

// StandardGroups returns the built-in command groups.
func StandardGroups() []handler.Group {
	return []handler.Group{
		cursorhandler.NewHandler(),
		editorhandler.NewCombinedHandler(),
		modehandler.NewHandler(),
		integrationhandler.NewHandler(),
	}
}

// RegisterHandlers registers all standard handlers with the dispatcher.
func RegisterHandlers(d *dispatcher.Dispatcher) error {
	for _, g := range StandardGroups() {
		if err := d.RegisterGroup(g); err != nil {
			return err
		}
	}
	return nil
}

// HandlerInfo describes a registered command.
type HandlerInfo struct {
	Command string
	Group   string
}

// ListHandlers returns every registered command in name order.
func (app *Application) ListHandlers() []HandlerInfo {
	if app.dispatcher == nil {
		return nil
	}
	reg := app.dispatcher.Registry()
	names := reg.List()
	infos := make([]HandlerInfo, 0, len(names))
	for _, name := range names {
		info := HandlerInfo{Command: name}
		if g, ok := reg.Get(name).(handler.Group); ok {
			info.Group = g.Name()
		}
		infos = append(infos, info)
	}
	return infos
}
