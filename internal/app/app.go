package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
)

type App struct {
	configPath string
	config     pkgconfig.Config
	uuid       pkguid.StringID
	router     *pkgrouter.Router
	httpServer *http.Server
	closerFn   map[string]func(context.Context) error
}

// New wires the application. An empty configPath picks the default location.
func New(configPath string) *App {
	app := &App{configPath: configPath}
	app.initConfig()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()
	return app
}
