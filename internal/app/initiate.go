package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
)

// ConfigPath resolves the config file location. LOCAL=true reads from the
// working directory instead of the container mount.
func ConfigPath(path string) string {
	if path != "" {
		return path
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

// LoadConfig reads the config and applies app.tz to the process.
func LoadConfig(path string) (pkgconfig.Config, error) {
	cfg, err := pkgconfig.NewViper(ConfigPath(path))
	if err != nil {
		return nil, err
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // ignore error
		os.Setenv("TZ", tz)
		if loc, err := time.LoadLocation(tz); err == nil {
			time.Local = loc
		} else {
			slog.Warn("unknown app.tz, keeping local time zone", "tz", tz, "error", err)
		}
	}

	return cfg, nil
}

func (a *App) initConfig() {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initHTTPServer() {
	a.uuid = pkguid.NewUUID()
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{pkgrouter.HeaderRequestID},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
