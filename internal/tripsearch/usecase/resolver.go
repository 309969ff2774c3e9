package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/itinerary"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/normalizer"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/provider"
)

// Attempt describes one call to an offer source.
type Attempt struct {
	Source   entity.Source
	Received int
	Accepted int
	Rejected map[itinerary.Reason]int
	Err      error
	Duration time.Duration
}

// Reason renders why the attempt did or did not produce offers.
func (a Attempt) Reason() string {
	switch {
	case errors.Is(a.Err, context.DeadlineExceeded):
		return fmt.Sprintf("%s timed out", a.Source)
	case errors.Is(a.Err, provider.ErrRejected):
		return fmt.Sprintf("%s rejected the search", a.Source)
	case a.Err != nil:
		return fmt.Sprintf("%s unavailable", a.Source)
	case a.Received == 0:
		return fmt.Sprintf("%s returned no offers", a.Source)
	case a.Accepted == 0:
		return fmt.Sprintf("%s offers did not match the itinerary", a.Source)
	default:
		return ""
	}
}

type Resolution struct {
	Leg            entity.Leg
	Offers         []entity.FlightOffer
	Source         entity.Source
	FallbackReason string
	Attempts       []Attempt
}

// Resolver walks offer sources in order and settles on the first one that
// yields at least one offer accepted by the itinerary filter.
type Resolver struct {
	sources []provider.OfferSource
	timeout time.Duration
}

func NewResolver(sources []provider.OfferSource, timeout time.Duration) *Resolver {
	return &Resolver{sources: sources, timeout: timeout}
}

// Resolve never fails. When every source comes up empty it generates
// synthetic offers for the leg directly.
func (r *Resolver) Resolve(ctx context.Context, req entity.SearchRequest, leg entity.LegQuery, today time.Time) Resolution {
	res := Resolution{Leg: leg.Leg}
	norm := normalizer.New(leg, req.Currency, req.CabinClass)
	filter := itinerary.New(req, today)
	sreq := provider.NewSearchRequest(req, leg)

	for _, src := range r.sources {
		attempt, offers := r.try(ctx, src, sreq, norm, filter, leg.Leg)
		res.Attempts = append(res.Attempts, attempt)
		if len(offers) > 0 {
			res.Offers = offers
			res.Source = src.Name()
			res.FallbackReason = fallbackReason(res.Source, res.Attempts)
			return res
		}
	}

	res.Offers = provider.Generate(provider.DefaultSyntheticCount, leg.Origin, leg.Destination, leg.Date)
	res.Source = entity.SourceMock
	res.FallbackReason = fallbackReason(res.Source, res.Attempts)
	slog.WarnContext(ctx, "all offer sources empty, generated synthetic offers",
		"leg", leg.Leg,
		"count", len(res.Offers),
	)
	return res
}

func (r *Resolver) try(
	ctx context.Context,
	src provider.OfferSource,
	sreq provider.SearchRequest,
	norm normalizer.Normalizer,
	filter itinerary.Filter,
	leg entity.Leg,
) (Attempt, []entity.FlightOffer) {
	attempt := Attempt{Source: src.Name()}
	start := time.Now()

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raws, err := src.Search(callCtx, sreq)
	attempt.Duration = time.Since(start)
	if err != nil {
		attempt.Err = err
		logAttempt(ctx, leg, attempt)
		return attempt, nil
	}

	result := filter.Apply(norm.NormalizeAll(raws, src.Name()), leg)
	attempt.Received = len(raws)
	attempt.Accepted = len(result.Accepted)
	attempt.Rejected = result.Rejected
	logAttempt(ctx, leg, attempt)
	return attempt, result.Accepted
}

func logAttempt(ctx context.Context, leg entity.Leg, a Attempt) {
	attrs := []any{
		"leg", leg,
		"source", a.Source,
		"received", a.Received,
		"accepted", a.Accepted,
		"duration_ms", a.Duration.Milliseconds(),
	}
	for reason, count := range a.Rejected {
		attrs = append(attrs, "rejected_"+string(reason), count)
	}
	if a.Err != nil {
		level := slog.LevelWarn
		if errors.Is(a.Err, context.Canceled) {
			level = slog.LevelInfo
		}
		slog.Log(ctx, level, "offer source failed", append(attrs, "error", a.Err)...)
		return
	}
	if a.Accepted == 0 {
		slog.InfoContext(ctx, "offer source produced no usable offers", attrs...)
		return
	}
	slog.InfoContext(ctx, "offer source resolved", attrs...)
}

func fallbackReason(winner entity.Source, attempts []Attempt) string {
	var skipped []string
	for _, a := range attempts {
		if reason := a.Reason(); reason != "" {
			skipped = append(skipped, reason)
		}
	}
	var tier string
	switch winner {
	case entity.SourceLive:
		tier = "live provider results"
	case entity.SourceBackend:
		tier = "backend provider results"
	default:
		tier = "synthetic offers"
	}
	if len(skipped) == 0 {
		return "using " + tier
	}
	return "using " + tier + " (" + strings.Join(skipped, "; ") + ")"
}
