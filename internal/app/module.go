package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.trip-search.enabled") {
		if err := tripsearch.New(tripsearch.Dependency{
			Config: a.config,
			Router: a.router,
			UUID:   a.uuid,
		}); err != nil {
			slog.Error("failed to init module trip-search", "error", err)
			os.Exit(1)
		}
	}
}
