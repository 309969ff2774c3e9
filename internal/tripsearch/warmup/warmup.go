// Package warmup runs batches of searches through a bounded worker pool,
// filling the result cache and reporting which source tier answered.
package warmup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
)

type Route struct {
	Origin      string
	Destination string
}

func (r Route) String() string {
	return r.Origin + "-" + r.Destination
}

// ParseRoutes reads a comma separated list such as "JFK-CDG,SFO-NRT".
func ParseRoutes(value string) ([]Route, error) {
	var routes []Route
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		origin, destination, ok := strings.Cut(item, "-")
		if !ok || strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
			return nil, fmt.Errorf("invalid route %q, want ORIGIN-DESTINATION", item)
		}
		routes = append(routes, Route{
			Origin:      strings.ToUpper(strings.TrimSpace(origin)),
			Destination: strings.ToUpper(strings.TrimSpace(destination)),
		})
	}
	return routes, nil
}

type Options struct {
	// Days is how many departure dates to search, starting tomorrow.
	Days int
	// StayDays adds a return date that many days after departure. Zero searches one way.
	StayDays int
	Workers  int
	Adults   int
	Now      func() time.Time
}

type Report struct {
	Route        Route
	Departure    time.Time
	Source       entity.Source
	ReturnSource entity.Source
	Offers       int
	RoundTrips   int
	CacheHit     bool
	Err          error
}

type searcher interface {
	Trips(ctx context.Context, in usecase.TripsInput) (*usecase.TripsOutput, error)
}

// Run searches every route on every date. Reports come back in route then
// date order regardless of completion order.
func Run(ctx context.Context, s searcher, routes []Route, opts Options) ([]Report, error) {
	if opts.Days <= 0 {
		opts.Days = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Adults <= 0 {
		opts.Adults = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("warmup pool: %w", err)
	}
	defer pool.Release()

	today := entity.DateOnly(opts.Now())
	reports := make([]Report, len(routes)*opts.Days)
	var wg sync.WaitGroup

	for i, route := range routes {
		for d := 0; d < opts.Days; d++ {
			idx := i*opts.Days + d
			departure := today.AddDate(0, 0, d+1)
			reports[idx] = Report{Route: route, Departure: departure}

			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				search(ctx, s, &reports[idx], opts)
			}); err != nil {
				wg.Done()
				reports[idx].Err = err
			}
		}
	}
	wg.Wait()

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
		}
	}
	slog.InfoContext(ctx, "warmup finished", "searches", len(reports), "failed", failed)
	return reports, nil
}

func search(ctx context.Context, s searcher, report *Report, opts Options) {
	req := entity.SearchRequest{
		Origin:        report.Route.Origin,
		Destination:   report.Route.Destination,
		DepartureDate: report.Departure,
		Passengers:    entity.Passengers{Adults: opts.Adults},
	}
	if opts.StayDays > 0 {
		ret := report.Departure.AddDate(0, 0, opts.StayDays)
		req.ReturnDate = &ret
	}

	out, err := s.Trips(ctx, usecase.TripsInput{Request: req})
	if err != nil {
		report.Err = err
		slog.WarnContext(ctx, "warmup search failed", "route", report.Route.String(), "error", err)
		return
	}
	report.Source = out.Outbound.Source
	report.Offers = out.Outbound.TotalOffers
	report.RoundTrips = len(out.RoundTrips)
	report.CacheHit = out.Metadata.CacheHit
	if out.Return != nil {
		report.ReturnSource = out.Return.Source
	}
}
