package util

import "testing"

func TestHashVector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		vec      []float64
		vec1     []float64
		expected bool
	}{
		{name: "same", vec: []float64{1, 2, 3}, vec1: []float64{1, 2, 3}, expected: true},
		{name: "different_value", vec: []float64{1, 2, 3}, vec1: []float64{1, 2, 4}, expected: false},
		{name: "shifted_digits", vec: []float64{1, 12}, vec1: []float64{11, 2}, expected: false},
		{name: "different_len", vec: []float64{1, 2}, vec1: []float64{1, 2, 0}, expected: false},
		{name: "empty", vec: []float64{}, vec1: nil, expected: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := HashVector(test.vec) == HashVector(test.vec1)
			if got != test.expected {
				t.Errorf("hash comparison of %v and %v, got: %v, expected: %v", test.vec, test.vec1, got, test.expected)
			}
		})
	}
}

func TestHashVectors(t *testing.T) {
	t.Parallel()
	a := HashVectors([]float64{0, 0}, []float64{1, 1})
	b := HashVectors([]float64{0, 0}, []float64{1, 1})
	c := HashVectors([]float64{1, 1}, []float64{0, 0})
	if a != b {
		t.Errorf("equal sequences must hash equal")
	}
	if a == c {
		t.Errorf("order of vectors must change the hash")
	}
}
