package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a coordinate vector. It satisfies kdtree.Point and encodes to JSON as a
// plain array.
type Point []float64

// New wraps vec without copying it.
func New(vec []float64) Point {
	return vec
}

func (v Point) Dimensions() int {
	return len(v)
}

func (v Point) Dim(idx int) float64 {
	return v[idx]
}

func (v Point) SizeEqual(vec Point) bool {
	return len(v) == len(vec)
}

func (v Point) Equal(vec Point) bool {
	if len(v) != len(vec) {
		return false
	}
	for i, value := range v {
		if vec[i] != value {
			return false
		}
	}
	return true
}

func (v Point) String() string {
	parts := make([]string, len(v))
	for i := range v {
		parts[i] = strconv.FormatFloat(v[i], 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Parse reads a point written as comma separated coordinates, e.g. "-10,2.5".
func Parse(s string) (Point, error) {
	fields := strings.Split(s, ",")
	p := make(Point, len(fields))
	for i, f := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d of %q: %w", i, s, err)
		}
		p[i] = value
	}
	return p, nil
}
