package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/dataset/model"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	metaBucket   = "dataset:meta"
	pointsBucket = "dataset:points"
)

var ErrNotFound = fmt.Errorf("dataset not found")

type FilterFn func(dataset model.Dataset) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

// meta is everything but the points, stored as JSON so it can be listed cheaply.
type meta struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Dimensions int       `json:"dimensions"`
	Len        int       `json:"len"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (db *DB) Store(_ context.Context, dataset model.Dataset) error {
	metaBytes, err := json.Marshal(meta{
		ID:         dataset.ID,
		Name:       dataset.Name,
		Dimensions: dataset.Dimensions(),
		Len:        len(dataset.Points),
		CreatedAt:  dataset.CreatedAt,
	})
	if err != nil {
		return err
	}
	pointBytes, err := encodePoints(dataset.Points)
	if err != nil {
		return fmt.Errorf("encode points of %s: %w", dataset.ID, err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		key := []byte(dataset.ID.String())
		b, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put(key, metaBytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		b, err = tx.CreateBucketIfNotExists([]byte(pointsBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put(key, pointBytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) Delete(_ context.Context, id uuid.UUID) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		key := []byte(id.String())
		for _, name := range []string{metaBucket, pointsBucket} {
			b := tx.Bucket([]byte(name))
			if b == nil {
				continue
			}
			if err := b.Delete(key); err != nil {
				return fmt.Errorf("unable delete: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := db.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Find(_ context.Context, id uuid.UUID) (model.Dataset, error) {
	var (
		dataset model.Dataset
		found   bool
	)
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		var err error
		dataset, found, err = readDataset(tx, []byte(id.String()))
		return err
	}); err != nil {
		return model.Dataset{}, fmt.Errorf("view transaction error: %w", err)
	}
	if !found {
		return model.Dataset{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return dataset, nil
}

// FindAll loads every stored dataset with its points. A nil filter keeps all of them.
func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(metaBucket))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			dataset, found, err := readDataset(tx, k)
			if err != nil {
				return err
			}
			if found && (filter == nil || filter(dataset)) {
				datasets = append(datasets, dataset)
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	return datasets, nil
}

func (db *DB) Keys() ([]uuid.UUID, error) {
	var keys []uuid.UUID
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(metaBucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			id, err := uuid.ParseBytes(k)
			if err != nil {
				return fmt.Errorf("bad dataset key %q: %w", k, err)
			}
			keys = append(keys, id)
			return nil
		})
	})

	return keys, err
}

func readDataset(tx *bolt.Tx, key []byte) (model.Dataset, bool, error) {
	var (
		m       meta
		dataset model.Dataset
	)
	metaB, pointsB := tx.Bucket([]byte(metaBucket)), tx.Bucket([]byte(pointsBucket))
	if metaB == nil || pointsB == nil {
		return dataset, false, nil
	}
	metaBytes, pointBytes := metaB.Get(key), pointsB.Get(key)
	if metaBytes == nil || pointBytes == nil {
		return dataset, false, nil
	}
	if err := json.Unmarshal(metaBytes, &m); err != nil {
		return dataset, false, fmt.Errorf("json unmarshal error, %q", err)
	}
	points, err := decodePoints(pointBytes)
	if err != nil {
		return dataset, false, fmt.Errorf("dataset %s: %w", m.ID, err)
	}
	if len(points) != m.Len {
		return dataset, false, fmt.Errorf("dataset %s: stored %d points, decoded %d", m.ID, m.Len, len(points))
	}

	dataset = model.Dataset{ID: m.ID, Name: m.Name, Points: points, CreatedAt: m.CreatedAt}
	return dataset, true, nil
}
