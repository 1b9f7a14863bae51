package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/spf13/cobra"
	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"
)

func (a *app) newBenchCommand() *cobra.Command {
	var (
		path    string
		queries int
		workers int
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run random range queries against a dataset file in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			logger := logging.FromContext(ctx)
			if workers < 1 {
				return fmt.Errorf("workers must be positive, got %d", workers)
			}
			set, tree, err := loadTree(path, 0)
			if err != nil {
				return err
			}

			var reported int64
			start := time.Now()
			grp, grpCtx := errgroup.WithContext(ctx)
			for w := 0; w < workers; w++ {
				n := queries / workers
				if w < queries%workers {
					n++
				}
				grp.Go(func() error {
					for i := 0; i < n; i++ {
						if grpCtx.Err() != nil {
							return grpCtx.Err()
						}
						min, max := randomBox(set.Points)
						found, err := tree.SearchRange(min, max)
						if err != nil {
							return err
						}
						if verify {
							if expected := (geom.Rect{Min: min, Max: max}).Filter(set.Points); len(expected) != len(found) {
								return fmt.Errorf("box %v-%v: tree found %d points, linear scan %d", min, max, len(found), len(expected))
							}
						}
						atomic.AddInt64(&reported, int64(len(found)))
					}
					return nil
				})
			}
			if err := grp.Wait(); err != nil {
				return err
			}

			elapsed := time.Since(start)
			logger.Debugf("bench finished in %v", elapsed)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "queries: %d\nworkers: %d\nreported: %d\nelapsed: %v\nqps: %.0f\n",
				queries, workers, reported, elapsed, float64(queries)/elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "dataset file")
	cmd.Flags().IntVarP(&queries, "queries", "q", 1000, "number of queries")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent searchers")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every result size against a linear scan")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// randomBox spans two random dataset points, so boxes follow the data distribution.
func randomBox(points []geom.Point) (geom.Point, geom.Point) {
	p := points[fastrand.Uint32n(uint32(len(points)))]
	q := points[fastrand.Uint32n(uint32(len(points)))]
	min, max := make(geom.Point, len(p)), make(geom.Point, len(p))
	for i := range p {
		min[i], max[i] = p[i], q[i]
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}
	return min, max
}
