package ingest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

type Request struct {
	Name   string      `json:"name"`
	Points [][]float64 `json:"points"`
}

// Service is the part of the index the handler needs.
type Service interface {
	index.Ingester
	Stats() []index.Info
}

func NewHandler(cfg *Config, svc Service) (http.Handler, error) {
	return &handler{
		cfg: cfg,
		svc: svc,
	}, nil
}

type handler struct {
	svc Service
	cfg *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	defer r.Body.Close()

	switch r.Method {
	case http.MethodPost:
		h.put(ctx, w, r)
	case http.MethodDelete:
		h.delete(ctx, w, r)
	case http.MethodGet:
		httputil.RespJSON(ctx, w, http.StatusOK, h.svc.Stats())
	default:
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
	}
}

func (h *handler) put(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req Request
	if !httputil.DecodeJSON(ctx, w, r, &req) {
		return
	}
	if len(req.Points) > h.cfg.MaxPoints {
		httputil.RespBadRequest(ctx, w, `{"error": "too many points, max allowed len is %d"}`, h.cfg.MaxPoints)
		return
	}

	points := make([]geom.Point, len(req.Points))
	for i := range req.Points {
		points[i] = geom.New(req.Points[i])
	}
	info, err := h.svc.Put(ctx, req.Name, points)
	if err != nil {
		respIndexErr(ctx, w, err)
		return
	}
	logging.FromContext(ctx).Infof("stored dataset %s (%s)", info.ID, info.Name)
	httputil.RespJSON(ctx, w, http.StatusCreated, info)
}

func (h *handler) delete(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "invalid dataset id: %v"}`, err)
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		respIndexErr(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respIndexErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, index.ErrNotFound):
		httputil.RespNotFound(ctx, w, `{"error": %q}`, err.Error())
	case errors.Is(err, index.ErrClosed):
		http.Error(w, `{"error": "shutting down"}`, http.StatusServiceUnavailable)
	case errors.Is(err, kdtree.ErrEmptyInput),
		errors.Is(err, kdtree.ErrDimensionMismatch),
		errors.Is(err, kdtree.ErrDuplicatePoint),
		errors.Is(err, kdtree.ErrInvalidCoordinate),
		errors.Is(err, kdtree.ErrDepthLimit):
		httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
	default:
		httputil.RespInternalError(ctx, w, `{"error": "dataset processing error, %v"}`, err)
	}
}
