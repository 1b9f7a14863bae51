package kdtree

// node is a leaf when both children are nil, otherwise both are set.
type node struct {
	Key   Point
	Left  *node
	Right *node
}

func (n *node) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

func (n *node) Points() []Point {
	if n.isLeaf() {
		return []Point{n.Key}
	}
	return append(n.Left.Points(), n.Right.Points()...)
}

func (n *node) reportSubtree(min, max Point, depth int) []Point {
	if n.isLeaf() {
		if contains(n.Key, min, max) {
			return []Point{n.Key}
		}
		return nil
	}

	dim := depth % n.Key.Dimensions()
	var points []Point
	if Compare(n.Key, min, dim) != Less {
		points = n.Left.reportSubtree(min, max, depth+1)
	}
	if Compare(n.Key, max, dim) == Less {
		points = append(points, n.Right.reportSubtree(min, max, depth+1)...)
	}
	return points
}

func (n *node) walk(depth int, fn func(p Point, depth int, leaf bool) bool) {
	if !fn(n.Key, depth, n.isLeaf()) || n.isLeaf() {
		return
	}
	n.Left.walk(depth+1, fn)
	n.Right.walk(depth+1, fn)
}

func (n *node) depth() int {
	if n.isLeaf() {
		return 0
	}
	l, r := n.Left.depth(), n.Right.depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

func contains(p, min, max Point) bool {
	for dim := 0; dim < p.Dimensions(); dim++ {
		if min.Dim(dim) > p.Dim(dim) || max.Dim(dim) < p.Dim(dim) {
			return false
		}
	}
	return true
}
