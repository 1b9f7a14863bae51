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

// Ordering is the result of comparing two points along a splitting dimension.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// Compare orders p1 against p2 on dimension dim. When the coordinates on dim are
// the same, the next dimensions are scanned cyclically (dim+1, ..., k-1, 0, ...)
// until one differs. Equal is returned only if the points match on every dimension.
//
// Both points must have the same number of dimensions.
func Compare(p1, p2 Point, dim int) Ordering {
	k := p1.Dimensions()
	for i := 0; i < k; i++ {
		d := (dim + i) % k
		a, b := p1.Dim(d), p2.Dim(d)
		if a < b {
			return Less
		}
		if a > b {
			return Greater
		}
	}
	return Equal
}

// EqualPoints reports whether p1 and p2 have the same arity and the same coordinates.
func EqualPoints(p1, p2 Point) bool {
	if p1.Dimensions() != p2.Dimensions() {
		return false
	}
	for i := 0; i < p1.Dimensions(); i++ {
		if p1.Dim(i) != p2.Dim(i) {
			return false
		}
	}
	return true
}
