package geom

import "fmt"

var (
	ErrDimNotEqual = fmt.Errorf("vectors dimension is not equal")
	ErrInvertedBox = fmt.Errorf("min corner is above max corner")
)

// Rect is a closed axis-aligned box.
type Rect struct {
	Min Point
	Max Point
}

func NewRect(min, max Point) (Rect, error) {
	r := Rect{Min: min, Max: max}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

func (r Rect) Dimensions() int {
	return len(r.Min)
}

func (r Rect) Validate() error {
	if !r.Min.SizeEqual(r.Max) {
		return ErrDimNotEqual
	}
	for i := range r.Min {
		if !(r.Min[i] <= r.Max[i]) {
			return fmt.Errorf("dimension %d: %v > %v: %w", i, r.Min[i], r.Max[i], ErrInvertedBox)
		}
	}
	return nil
}

// Contains reports whether p lies inside the box, bounds included.
func (r Rect) Contains(p Point) bool {
	if !p.SizeEqual(r.Min) {
		return false
	}
	for i := range p {
		if p[i] < r.Min[i] || p[i] > r.Max[i] {
			return false
		}
	}
	return true
}

// Filter is the linear scan counterpart of a tree range query.
func (r Rect) Filter(points []Point) []Point {
	var inside []Point
	for _, p := range points {
		if r.Contains(p) {
			inside = append(inside, p)
		}
	}
	return inside
}
