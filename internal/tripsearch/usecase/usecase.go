package usecase

import (
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/cache"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/provider"
)

type Dependency struct {
	// Sources in fallback order; the synthetic source belongs last.
	Sources         []provider.OfferSource
	Hotels          provider.HotelSource
	Cache           *cache.Cache[*resolvedTrip]
	CacheTTL        time.Duration
	ProviderTimeout time.Duration
	UUID            pkguid.StringID
	Now             func() time.Time
}

type Usecase struct {
	resolver    *Resolver
	hotels      provider.HotelSource
	cache       *cache.Cache[*resolvedTrip]
	cacheTTL    time.Duration
	timeout     time.Duration
	uuid        pkguid.StringID
	now         func() time.Time
	generations *generations
}

func New(dep Dependency) *Usecase {
	now := dep.Now
	if now == nil {
		now = time.Now
	}
	uuid := dep.UUID
	if uuid == nil {
		uuid = pkguid.NewUUID()
	}
	store := dep.Cache
	if store == nil {
		store = NewCache()
	}
	return &Usecase{
		resolver:    NewResolver(dep.Sources, dep.ProviderTimeout),
		hotels:      dep.Hotels,
		cache:       store,
		cacheTTL:    dep.CacheTTL,
		timeout:     dep.ProviderTimeout,
		uuid:        uuid,
		now:         now,
		generations: newGenerations(),
	}
}

// NewCache returns a result cache suitable for Dependency.Cache.
func NewCache() *cache.Cache[*resolvedTrip] {
	return cache.New(cloneResolvedTrip)
}
