package tripsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsecase_MissingBaseURL(t *testing.T) {
	for _, source := range []string{"live", "backend", "hotel"} {
		t.Run(source, func(t *testing.T) {
			cfg := pkgconfig.NewFromMap(map[string]any{prefix + source + ".enabled": true})

			_, err := NewUsecase(cfg, pkguid.NewUUID())
			assert.ErrorContains(t, err, "base_url")
		})
	}
}

func TestNewUsecase_SyntheticOnly(t *testing.T) {
	uc, err := NewUsecase(pkgconfig.NewFromMap(map[string]any{}), pkguid.NewUUID())
	require.NoError(t, err)

	dep := time.Now().AddDate(0, 0, 7)
	ret := dep.AddDate(0, 0, 5)
	out, err := uc.Trips(context.Background(), usecase.TripsInput{
		Request: entity.SearchRequest{
			Origin: "JFK", Destination: "CDG", DepartureDate: dep, ReturnDate: &ret,
			Passengers: entity.Passengers{Adults: 1},
		},
		IncludeHotels: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SourceMock, out.Outbound.Source)
	assert.NotEmpty(t, out.Outbound.Offers)
	require.NotNil(t, out.Return)
	assert.NotEmpty(t, out.RoundTrips)
	assert.NotEmpty(t, out.Vacations)
}

func TestNewUsecase_CacheTTL(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]any
		wantHit bool
	}{
		{name: "default", config: map[string]any{}, wantHit: true},
		{name: "zero keeps default", config: map[string]any{prefix + "cache.ttl_seconds": 0}, wantHit: true},
		{name: "explicit", config: map[string]any{prefix + "cache.ttl_seconds": 30}, wantHit: true},
		{name: "negative disables", config: map[string]any{prefix + "cache.ttl_seconds": -1}, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, err := NewUsecase(pkgconfig.NewFromMap(tt.config), pkguid.NewUUID())
			require.NoError(t, err)

			in := usecase.TripsInput{Request: entity.SearchRequest{
				Origin: "JFK", Destination: "CDG", DepartureDate: time.Now().AddDate(0, 0, 7),
				Passengers: entity.Passengers{Adults: 1},
			}}
			first, err := uc.Trips(context.Background(), in)
			require.NoError(t, err)
			assert.False(t, first.Metadata.CacheHit)

			second, err := uc.Trips(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, second.Metadata.CacheHit)
		})
	}
}

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, defaultCacheTTL, cacheTTL(0))
	assert.Equal(t, 5*time.Second, cacheTTL(5))
	assert.Equal(t, time.Duration(0), cacheTTL(-1))
}

func TestNew_RegistersRoutes(t *testing.T) {
	router := pkgrouter.NewRouter(pkguid.NewUUID())
	require.NoError(t, New(Dependency{
		Config: pkgconfig.NewFromMap(map[string]any{}),
		Router: router,
		UUID:   pkguid.NewUUID(),
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips?origin=JFK", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNew_InvalidWarmupRoutes(t *testing.T) {
	err := New(Dependency{
		Config: pkgconfig.NewFromMap(map[string]any{prefix + "warmup.routes": "JFKCDG"}),
		Router: pkgrouter.NewRouter(pkguid.NewUUID()),
		UUID:   pkguid.NewUUID(),
	})
	assert.ErrorContains(t, err, "invalid route")
}
