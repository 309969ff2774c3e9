package inbound

import (
	"context"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
)

type uc interface {
	Trips(ctx context.Context, in usecase.TripsInput) (*usecase.TripsOutput, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/trips", end.Trips)
	r.GET("/healthz", end.Health)
}
