package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opencensus.io/stats/view"
)

func TestRegister(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if err := Register(); err != nil {
		t.Fatalf("repeated registration, the error should not be returned: %v", err)
	}
	for _, v := range Views() {
		if view.Find(v.Name) == nil {
			t.Errorf("view %s is not registered", v.Name)
		}
	}
}

func TestRecordSearch(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	ctx := context.Background()
	start := time.Now()
	for _, c := range []string{CacheHit, CacheMiss, CacheMiss} {
		if err := RecordSearch(ctx, start, c, 3); err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
	}
	rows, err := view.RetrieveData("kdrange/search_count")
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range rows {
		for _, tg := range row.Tags {
			if tg.Key == KeyCache {
				counts[tg.Value] = row.Data.(*view.CountData).Value
			}
		}
	}
	if counts[CacheHit] < 1 || counts[CacheMiss] < 2 {
		t.Errorf("search counts by cache result, got: %v", counts)
	}
}

func TestNewHandler(t *testing.T) {
	h, err := NewHandler("kdrange_test")
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	RecordBuild(context.Background(), time.Now())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("scrape status, got: %v, expected: %v", rec.Code, http.StatusOK)
	}
}
