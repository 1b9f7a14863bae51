package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	BuildLatency    = stats.Float64("kdrange/build_latency", "The time spent building a tree", stats.UnitMilliseconds)
	SearchLatency   = stats.Float64("kdrange/search_latency", "The time spent on a range query", stats.UnitMilliseconds)
	ReportedPoints  = stats.Int64("kdrange/reported_points", "The number of points returned by a range query", stats.UnitDimensionless)
	IndexedDatasets = stats.Int64("kdrange/indexed_datasets", "The number of datasets held in memory", stats.UnitDimensionless)

	KeyCache tag.Key

	latencyBuckets = view.Distribution(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000)
	countBuckets   = view.Distribution(0, 1, 10, 100, 1000, 10000, 100000)

	registerOnce sync.Once
	registerErr  error
)

func init() {
	var err error
	if KeyCache, err = tag.NewKey("cache"); err != nil {
		panic(err)
	}
}

func Views() []*view.View {
	return []*view.View{
		{
			Name:        "kdrange/build_latency",
			Measure:     BuildLatency,
			Description: "Distribution of tree build latency",
			Aggregation: latencyBuckets,
		},
		{
			Name:        "kdrange/search_latency",
			Measure:     SearchLatency,
			Description: "Distribution of range query latency by cache result",
			Aggregation: latencyBuckets,
			TagKeys:     []tag.Key{KeyCache},
		},
		{
			Name:        "kdrange/search_count",
			Measure:     SearchLatency,
			Description: "Number of range queries by cache result",
			Aggregation: view.Count(),
			TagKeys:     []tag.Key{KeyCache},
		},
		{
			Name:        "kdrange/reported_points",
			Measure:     ReportedPoints,
			Description: "Distribution of range query result sizes",
			Aggregation: countBuckets,
		},
		{
			Name:        "kdrange/indexed_datasets",
			Measure:     IndexedDatasets,
			Description: "Datasets currently indexed",
			Aggregation: view.LastValue(),
		},
	}
}

// Register registers the views once per process.
func Register() error {
	registerOnce.Do(func() {
		registerErr = view.Register(Views()...)
	})
	return registerErr
}

// NewHandler returns the prometheus scrape handler for the registered views.
func NewHandler(namespace string) (http.Handler, error) {
	if err := Register(); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	return exporter, nil
}

func Since(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func RecordBuild(ctx context.Context, start time.Time) {
	stats.Record(ctx, BuildLatency.M(Since(start)))
}

func RecordSearch(ctx context.Context, start time.Time, cache string, reported int) error {
	return stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyCache, cache)},
		SearchLatency.M(Since(start)),
		ReportedPoints.M(int64(reported)),
	)
}

func RecordDatasets(ctx context.Context, n int) {
	stats.Record(ctx, IndexedDatasets.M(int64(n)))
}
