package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkglog"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
)

const HeaderRequestID = "X-Request-ID"

// Handler returns the response payload or an error. Errors carrying
// Fields() map[string][]string are rendered as field validation errors.
type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux  *httprouter.Router
	uuid pkguid.StringID
}

type fieldError interface {
	Fields() map[string][]string
}

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Message string              `json:"message"`
	Error   map[string][]string `json:"error,omitempty"`
}

func NewRouter(uuid pkguid.StringID) *Router {
	mux := httprouter.New()
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "endpoint not found"})
	})
	mux.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed"})
	})
	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		slog.ErrorContext(r.Context(), "panic recovered", "panic", v)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}

	return &Router{mux: mux, uuid: uuid}
}

func (r *Router) GET(path string, h Handler) {
	r.mux.Handler(http.MethodGet, path, r.wrap(h))
}

func (r *Router) POST(path string, h Handler) {
	r.mux.Handler(http.MethodPost, path, r.wrap(h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	requestID := req.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = r.uuid.Generate()
	}
	w.Header().Set(HeaderRequestID, requestID)

	ctx := pkglog.WithRequestID(req.Context(), requestID)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()

	r.mux.ServeHTTP(rec, req.WithContext(ctx))

	slog.InfoContext(ctx, "http access",
		"method", req.Method,
		"path", req.URL.Path,
		"status", rec.status,
		"latency", time.Since(start).String(),
	)
}

func (r *Router) wrap(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, err := h(req.Context(), req)
		if err != nil {
			writeError(req.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Message: "success", Data: data})
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var fe fieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Error: fe.Fields()})
		return
	}

	if be, ok := pkgerror.As(err); ok {
		status := be.Code().HTTPStatus()
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "request failed", "error", err)
		}
		writeJSON(w, status, errorResponse{Message: be.Message()})
		return
	}

	slog.ErrorContext(ctx, "request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson // client gone
	json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
