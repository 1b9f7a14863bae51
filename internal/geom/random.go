package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-sod/kdrange/internal/util"
	"github.com/valyala/fastrand"
)

var ErrBoundsTooSmall = fmt.Errorf("bounds hold fewer distinct points than requested")

// Bound is an inclusive integer interval for one dimension.
type Bound struct {
	Min int
	Max int
}

func (b Bound) width() uint64 {
	return uint64(int64(b.Max)-int64(b.Min)) + 1
}

// RandomUnique returns count distinct points with integer coordinates, one
// coordinate per bound.
func RandomUnique(count int, bounds []Bound) ([]Point, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("no bounds given: %w", ErrDimNotEqual)
	}
	capacity := uint64(1)
	for i, b := range bounds {
		if b.Max < b.Min {
			return nil, fmt.Errorf("bound %d [%d, %d]: %w", i, b.Min, b.Max, ErrInvertedBox)
		}
		if b.width() > math.MaxUint32 {
			return nil, fmt.Errorf("bound %d [%d, %d] is too wide", i, b.Min, b.Max)
		}
		if capacity < uint64(count) {
			if b.width() >= uint64(count) {
				capacity = uint64(count)
			} else {
				capacity *= b.width()
			}
		}
	}
	if capacity < uint64(count) {
		return nil, fmt.Errorf("%d points requested, %d available: %w", count, capacity, ErrBoundsTooSmall)
	}

	seen := make(map[[32]byte]struct{}, count)
	points := make([]Point, 0, count)
	for len(points) < count {
		p := make(Point, len(bounds))
		for i, b := range bounds {
			p[i] = float64(int64(b.Min) + int64(fastrand.Uint32n(uint32(b.width()))))
		}
		key := util.HashVector(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		points = append(points, p)
	}
	return points, nil
}

// ParseBounds reads one "min:max" interval per dimension, comma separated,
// e.g. "-100:100,0:50".
func ParseBounds(s string) ([]Bound, error) {
	fields := strings.Split(s, ",")
	bounds := make([]Bound, len(fields))
	for i, f := range fields {
		parts := strings.SplitN(strings.TrimSpace(f), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bound %d %q: expected min:max", i, f)
		}
		min, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bound %d min: %w", i, err)
		}
		max, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bound %d max: %w", i, err)
		}
		bounds[i] = Bound{Min: min, Max: max}
	}
	return bounds, nil
}
