package database

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/dataset/model"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir, err := ioutil.TempDir("", "kdrange-db")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	ctx := context.Background()
	db, err := database.NewFromEnv(ctx, &database.Config{FileName: filepath.Join(dir, "test.db"), Timeout: time.Second})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(ctx) })
	return New(db)
}

func assertDataset(t *testing.T, got, expected model.Dataset) {
	t.Helper()
	if got.ID != expected.ID || got.Name != expected.Name || !got.CreatedAt.Equal(expected.CreatedAt) {
		t.Errorf("dataset header got: %v/%v/%v, expected: %v/%v/%v",
			got.ID, got.Name, got.CreatedAt, expected.ID, expected.Name, expected.CreatedAt)
	}
	if len(got.Points) != len(expected.Points) {
		t.Fatalf("points length got: %v, expected: %v", len(got.Points), len(expected.Points))
	}
	for i := range got.Points {
		if !got.Points[i].Equal(expected.Points[i]) {
			t.Errorf("point %d got: %v, expected: %v", i, got.Points[i], expected.Points[i])
		}
	}
}

func TestDB_StoreFind(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	created := time.Date(2020, 8, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		dataset model.Dataset
	}{
		{name: "positive_2d", dataset: model.NewDataset("grid", []geom.Point{{0, 0}, {1.5, -2}, {3, 4}}, created)},
		{name: "positive_1d", dataset: model.NewDataset("line", []geom.Point{{0}, {2}, {4}, {6}, {8}}, created)},
		{name: "positive_4d", dataset: model.NewDataset("cube", []geom.Point{{1, 2, 3, 4}}, created)},
	}
	for _, test := range tests {
		if err := db.Store(ctx, test.dataset); err != nil {
			t.Fatalf("%s: the error should not be returned: %v", test.name, err)
		}
		got, err := db.Find(ctx, test.dataset.ID)
		if err != nil {
			t.Fatalf("%s: the error should not be returned: %v", test.name, err)
		}
		assertDataset(t, got, test.dataset)
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if len(keys) != len(tests) {
		t.Errorf("keys length got: %v, expected: %v", len(keys), len(tests))
	}
}

func TestDB_StoreMixedDimensions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	err := db.Store(context.Background(), model.NewDataset("bad", []geom.Point{{0, 0}, {1}}, time.Now()))
	if !errors.Is(err, geom.ErrDimNotEqual) {
		t.Errorf("store, got: %v, expected: %v", err, geom.ErrDimNotEqual)
	}
}

func TestDB_FindMissing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	if _, err := db.Find(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("find, got: %v, expected: %v", err, ErrNotFound)
	}
}

func TestDB_FindAllDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	old := model.NewDataset("old", []geom.Point{{1, 1}}, time.Now().Add(-time.Hour))
	fresh := model.NewDataset("fresh", []geom.Point{{2, 2}, {3, 3}}, time.Now())
	other := model.NewDataset("other", []geom.Point{{4}}, time.Now())
	for _, d := range []model.Dataset{old, fresh, other} {
		if err := db.Store(ctx, d); err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
	}

	all, err := db.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("find all length got: %v, expected: %v", len(all), 3)
	}

	outdated, err := db.FindAll(ctx, func(d model.Dataset) bool {
		return time.Since(d.CreatedAt) > time.Minute
	})
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if len(outdated) != 1 || outdated[0].ID != old.ID {
		t.Fatalf("filtered datasets got: %v, expected only %v", outdated, old.ID)
	}

	if err := db.DeleteMany(ctx, []uuid.UUID{old.ID, other.ID}); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	all, err = db.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("find all after delete length got: %v, expected: %v", len(all), 1)
	}
	assertDataset(t, all[0], fresh)

	if err := db.Delete(ctx, uuid.New()); err != nil {
		t.Errorf("deleting a missing dataset must not fail: %v", err)
	}
}

func TestDecodePoints_Corrupt(t *testing.T) {
	t.Parallel()
	data, err := encodePoints([]geom.Point{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if _, err := decodePoints(data[:len(data)-4]); err == nil {
		t.Errorf("decoding truncated data must fail")
	}
	if _, err := decodePoints(nil); err == nil {
		t.Errorf("decoding empty data must fail")
	}
}
