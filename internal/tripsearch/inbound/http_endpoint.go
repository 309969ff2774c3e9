package inbound

import (
	"context"
	"net/http"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Trips(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseTripsInput(r)
	if err != nil {
		return nil, err
	}

	output, err := h.uc.Trips(ctx, input)
	if err != nil {
		return nil, err
	}

	return NewTripsResponse(output), nil
}

func (h *HTTPEndpoint) Health(context.Context, *http.Request) (any, error) {
	return HealthResponse{Status: "ok"}, nil
}
