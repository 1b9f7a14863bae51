/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */
package kdtree

import (
	"fmt"
	"math"
	"sort"
)

var (
	ErrEmptyInput          = fmt.Errorf("kdtree: no points to build from")
	ErrDimensionMismatch   = fmt.Errorf("kdtree: points dimension is not equal")
	ErrDuplicatePoint      = fmt.Errorf("kdtree: duplicate point")
	ErrInvalidCoordinate   = fmt.Errorf("kdtree: coordinate is not a number")
	ErrInvalidRange        = fmt.Errorf("kdtree: invalid range")
	ErrDegeneratePartition = fmt.Errorf("kdtree: degenerate partition")
	ErrDepthLimit          = fmt.Errorf("kdtree: depth limit exceeded")
)

type Point interface {
	Dim(idx int) float64
	Dimensions() int
}

type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth fails the build with ErrDepthLimit if any node would sit deeper
// than n (the root is at depth 0). Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Tree is a static k-d tree. It is never modified after Build, so any number of
// goroutines may search it at the same time.
type Tree struct {
	root *node
	dims int
	len  int
}

// Build constructs a balanced tree over points. The input slice is not modified.
// Exact duplicate points are rejected with ErrDuplicatePoint.
func Build(points []Point, opts ...Option) (*Tree, error) {
	var o options
	for _, f := range opts {
		f(&o)
	}

	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	dims := points[0].Dimensions()
	if dims == 0 {
		return nil, fmt.Errorf("point 0 has no coordinates: %w", ErrDimensionMismatch)
	}
	for i, p := range points {
		if p.Dimensions() != dims {
			return nil, fmt.Errorf(
				"point %d has %d dimensions, expected %d: %w", i, p.Dimensions(), dims, ErrDimensionMismatch,
			)
		}
		for d := 0; d < dims; d++ {
			if math.IsNaN(p.Dim(d)) {
				return nil, fmt.Errorf("point %d, dimension %d: %w", i, d, ErrInvalidCoordinate)
			}
		}
	}

	items := make([]Point, len(points))
	copy(items, points)
	sort.Sort(&sortPoints{dim: 0, points: items})
	for i := 1; i < len(items); i++ {
		if EqualPoints(items[i-1], items[i]) {
			return nil, fmt.Errorf("%v: %w", items[i], ErrDuplicatePoint)
		}
	}

	b := builder{dims: dims, maxDepth: o.maxDepth}
	root, err := b.build(items, 0)
	if err != nil {
		return nil, err
	}

	return &Tree{root: root, dims: dims, len: len(points)}, nil
}

// SearchRange returns every indexed point p with min[i] <= p[i] <= max[i] on all
// dimensions. Points found in a left subtree precede those found in the right one.
func (t *Tree) SearchRange(min, max Point) ([]Point, error) {
	if min.Dimensions() != t.dims || max.Dimensions() != t.dims {
		return nil, fmt.Errorf(
			"range has %d/%d dimensions, tree has %d: %w", min.Dimensions(), max.Dimensions(), t.dims, ErrInvalidRange,
		)
	}
	for i := 0; i < t.dims; i++ {
		if !(min.Dim(i) <= max.Dim(i)) {
			return nil, fmt.Errorf(
				"dimension %d: min %v is above max %v: %w", i, min.Dim(i), max.Dim(i), ErrInvalidRange,
			)
		}
	}
	return t.root.reportSubtree(min, max, 0), nil
}

func (t *Tree) Len() int {
	return t.len
}

func (t *Tree) Dimensions() int {
	return t.dims
}

// Depth returns the depth of the deepest leaf, 0 for a single-point tree.
func (t *Tree) Depth() int {
	return t.root.depth()
}

// Points returns all indexed points in leaf order.
func (t *Tree) Points() []Point {
	return t.root.Points()
}

// Walk visits the nodes in pre-order. fn receives the split point, the node depth
// and whether the node is a leaf; returning false skips the children of that node.
func (t *Tree) Walk(fn func(p Point, depth int, leaf bool) bool) {
	t.root.walk(0, fn)
}

type sortPoints struct {
	dim    int
	points []Point
}

func (b *sortPoints) Len() int {
	return len(b.points)
}

func (b *sortPoints) Less(i, j int) bool {
	return Compare(b.points[i], b.points[j], b.dim) == Less
}

func (b *sortPoints) Swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
}

type builder struct {
	dims     int
	maxDepth int
}

func (b *builder) build(points []Point, depth int) (*node, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return nil, fmt.Errorf("%d points left at depth %d: %w", len(points), depth, ErrDepthLimit)
	}

	dim := depth % b.dims
	split := compositeMedian(points, dim)
	left, right := partition(points, split, dim)
	n := &node{Key: split}
	if len(points) == 1 {
		return n, nil
	}

	if len(left) == 0 || len(right) == 0 {
		return nil, fmt.Errorf(
			"%d points at depth %d split into %d/%d: %w", len(points), depth, len(left), len(right), ErrDegeneratePartition,
		)
	}

	var err error
	if n.Left, err = b.build(left, depth+1); err != nil {
		return nil, err
	}
	if n.Right, err = b.build(right, depth+1); err != nil {
		return nil, err
	}
	return n, nil
}

// compositeMedian sorts points along dim and returns the middle one. For an even
// count the lower of the two middle points wins.
func compositeMedian(points []Point, dim int) Point {
	sort.Sort(&sortPoints{dim: dim, points: points})
	count := len(points)
	if count%2 == 1 {
		return points[count/2]
	}
	lower, upper := points[count/2-1], points[count/2]
	if Compare(lower, upper, dim) == Greater {
		return upper
	}
	return lower
}

// partition splits points around split. The split point itself goes left.
func partition(points []Point, split Point, dim int) (left, right []Point) {
	for _, p := range points {
		if Compare(p, split, dim) == Greater {
			right = append(right, p)
		} else {
			left = append(left, p)
		}
	}
	return left, right
}
