package tripsearch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/inbound"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/provider"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/warmup"
)

const (
	prefix          = "modules.trip-search."
	defaultCacheTTL = 60 * time.Second
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	UUID   pkguid.StringID
}

func New(dep Dependency) error {
	uc, err := NewUsecase(dep.Config, dep.UUID)
	if err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	routes, err := warmup.ParseRoutes(dep.Config.GetString(prefix + "warmup.routes"))
	if err != nil {
		return err
	}
	if len(routes) > 0 {
		opts := WarmupOptions(dep.Config)
		go func() {
			//nolint:errcheck // failures are logged per search
			warmup.Run(context.Background(), uc, routes, opts)
		}()
	}

	return nil
}

func WarmupOptions(cfg pkgconfig.Config) warmup.Options {
	return warmup.Options{
		Days:     cfg.GetInt(prefix + "warmup.days"),
		StayDays: cfg.GetInt(prefix + "warmup.stay_days"),
		Workers:  cfg.GetInt(prefix + "warmup.workers"),
	}
}

// NewUsecase builds the search usecase with its source chain from config:
// live and backend when enabled, then the synthetic generator.
func NewUsecase(cfg pkgconfig.Config, uuid pkguid.StringID) (*usecase.Usecase, error) {
	timeout := time.Second
	if ms := cfg.GetInt(prefix + "provider.timeout_ms"); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}
	rateLimit := 100 * time.Millisecond
	if ms := cfg.GetInt(prefix + "provider.rate_limit_ms"); ms > 0 {
		rateLimit = time.Duration(ms) * time.Millisecond
	}
	client := &http.Client{Timeout: timeout}

	sources := make([]provider.OfferSource, 0, 3)
	if cfg.GetBool(prefix + "live.enabled") {
		baseURL := cfg.GetString(prefix + "live.base_url")
		if baseURL == "" {
			return nil, errors.New("live provider enabled without base_url")
		}
		sources = append(sources, provider.NewRateLimitedSource(provider.NewLiveProvider(provider.LiveConfig{
			BaseURL:    baseURL,
			APIKey:     cfg.GetString(prefix + "live.api_key"),
			MaxResults: cfg.GetInt(prefix + "live.max_results"),
			Client:     client,
		}), rateLimit))
	}
	if cfg.GetBool(prefix + "backend.enabled") {
		baseURL := cfg.GetString(prefix + "backend.base_url")
		if baseURL == "" {
			return nil, errors.New("backend provider enabled without base_url")
		}
		sources = append(sources, provider.NewRateLimitedSource(provider.NewBackendProvider(provider.BackendConfig{
			BaseURL: baseURL,
			Client:  client,
		}), rateLimit))
	}
	sources = append(sources, provider.NewSyntheticProvider(cfg.GetInt(prefix+"synthetic.count")))

	var hotels provider.HotelSource = provider.NewSyntheticHotelProvider(0)
	if cfg.GetBool(prefix + "hotel.enabled") {
		baseURL := cfg.GetString(prefix + "hotel.base_url")
		if baseURL == "" {
			return nil, errors.New("hotel provider enabled without base_url")
		}
		hotels = provider.NewHotelProvider(provider.HotelConfig{BaseURL: baseURL, Client: client})
	}

	ttl := cacheTTL(cfg.GetInt(prefix + "cache.ttl_seconds"))

	return usecase.New(usecase.Dependency{
		Sources:         sources,
		Hotels:          hotels,
		Cache:           usecase.NewCache(),
		CacheTTL:        ttl,
		ProviderTimeout: timeout,
		UUID:            uuid,
	}), nil
}

// cacheTTL maps the configured seconds to a TTL: unset or 0 keeps the default,
// a negative value disables the result cache.
func cacheTTL(seconds int) time.Duration {
	switch {
	case seconds < 0:
		return 0
	case seconds == 0:
		return defaultCacheTTL
	default:
		return time.Duration(seconds) * time.Second
	}
}
