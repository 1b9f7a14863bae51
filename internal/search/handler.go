package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Range struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

type Request struct {
	Dataset string  `json:"dataset"`
	Ranges  []Range `json:"ranges"`
}

type Result struct {
	Points []geom.Point `json:"points"`
}

// Response holds one result per requested range, in request order.
type Response struct {
	Dataset string   `json:"dataset"`
	Results []Result `json:"results"`
}

func NewHandler(cfg *Config, searcher index.Searcher) (http.Handler, error) {
	return &handler{
		cfg:      cfg,
		searcher: searcher,
	}, nil
}

type handler struct {
	searcher index.Searcher
	cfg      *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
		return
	}
	defer r.Body.Close()
	if !httputil.DecodeJSON(ctx, w, r, &req) {
		return
	}

	id, err := uuid.Parse(req.Dataset)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "invalid dataset id: %v"}`, err)
		return
	}
	if len(req.Ranges) > h.cfg.MaxRanges {
		httputil.RespBadRequest(ctx, w, `{"error": "ranges is too large, max allowed len is %d"}`, h.cfg.MaxRanges)
		return
	}

	results := make([]Result, len(req.Ranges))
	errGrp, grpCtx := errgroup.WithContext(ctx)
	for i := range req.Ranges {
		i := i
		errGrp.Go(func() error {
			points, err := h.searcher.Search(grpCtx, id, req.Ranges[i].Min, req.Ranges[i].Max)
			if err != nil {
				return fmt.Errorf("range %d: %w", i, err)
			}
			results[i] = Result{Points: points}
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		switch {
		case errors.Is(err, kdtree.ErrInvalidRange):
			httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
		case errors.Is(err, index.ErrNotFound):
			httputil.RespNotFound(ctx, w, `{"error": %q}`, err.Error())
		case errors.Is(err, index.ErrClosed):
			http.Error(w, `{"error": "shutting down"}`, http.StatusServiceUnavailable)
		default:
			httputil.RespInternalError(ctx, w, `{"error": "search processing error, %v"}`, err)
		}
		return
	}

	logger.Debugf("searched dataset %s with %d ranges", id, len(req.Ranges))
	httputil.RespJSON(ctx, w, http.StatusOK, Response{Dataset: req.Dataset, Results: results})
}
