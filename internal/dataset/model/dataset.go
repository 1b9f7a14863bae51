package model

import (
	"time"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

func NewDataset(name string, points []geom.Point, createdAt time.Time) Dataset {
	return Dataset{
		ID:        uuid.New(),
		Name:      name,
		Points:    points,
		CreatedAt: createdAt,
	}
}

// Dataset is a named static point set. A tree is built from it once it is stored.
type Dataset struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Points    []geom.Point `json:"points"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Dimensions returns the arity of the first point, 0 for an empty dataset.
func (d Dataset) Dimensions() int {
	if len(d.Points) == 0 {
		return 0
	}
	return d.Points[0].Dimensions()
}

func (d Dataset) Items() []kdtree.Point {
	items := make([]kdtree.Point, len(d.Points))
	for i := range d.Points {
		items[i] = d.Points[i]
	}
	return items
}
