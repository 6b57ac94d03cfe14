package app

import (
	"log/slog"
	"os"

	tb "github.com/travelbuddy/gotravelbuddy/internal/travelbuddy"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.travelbuddy.enabled") {
		if err := tb.New(tb.Dependency{
			Config: a.config,
			Router: a.router,
			UID:    a.uuid,
		}); err != nil {
			slog.Error("failed to init module travelbuddy", "error", err)
			os.Exit(1)
		}
	}
}
