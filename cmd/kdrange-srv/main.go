package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/kdrange/internal/buildinfo"
	kdrange "github.com/go-sod/kdrange/internal/config"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/ingest"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/metrics"
	"github.com/go-sod/kdrange/internal/search"
	"github.com/go-sod/kdrange/internal/server"
	"github.com/go-sod/kdrange/internal/setup"
	"github.com/go-sod/kdrange/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.Info.String())

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}
	done()
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := kdrange.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			logger.Errorf("env.Close: %v", err)
		}
	}()

	idx, err := env.ProvideIndex()()
	if err != nil {
		return fmt.Errorf("index provider function error: %w", err)
	}
	if err := idx.Run(ctx); err != nil {
		return fmt.Errorf("index.Run: %w", err)
	}
	defer idx.Stop()

	mux := http.NewServeMux()

	ingestHandler, err := ingest.NewHandler(&config.Ingest, idx)
	if err != nil {
		return fmt.Errorf("ingest.NewHandler: %w", err)
	}
	searchHandler, err := search.NewHandler(&config.Search, idx)
	if err != nil {
		return fmt.Errorf("search.NewHandler: %w", err)
	}
	metricsHandler, err := metrics.NewHandler(config.MetricsNamespace)
	if err != nil {
		return fmt.Errorf("metrics.NewHandler: %w", err)
	}

	mux.Handle("/datasets", httputil.RequireBearer(config.HTTP.BearerToken, ingestHandler))
	mux.Handle("/search", httputil.RequireBearer(config.HTTP.BearerToken, searchHandler))
	mux.Handle("/health", server.HandleHealth(ctx))
	mux.Handle("/metrics", metricsHandler)

	srv, err := server.New(config.SrvAddr, config.MaxConns)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	var grpcSrv *server.Server
	if config.GRPCAddr != "" {
		if grpcSrv, err = server.New(config.GRPCAddr, config.MaxConns); err != nil {
			return fmt.Errorf("server.New: %w", err)
		}
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		logger.Infof("http listening on %s", srv.Addr())
		return srv.ServeHTTPHandler(grpCtx, mux)
	})
	if grpcSrv != nil {
		grp.Go(func() error {
			logger.Infof("grpc health listening on %s", grpcSrv.Addr())
			return grpcSrv.ServeGRPC(grpCtx, server.NewHealthServer(grpCtx))
		})
	}

	return grp.Wait()
}
