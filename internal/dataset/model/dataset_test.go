package model

import (
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/geom"
)

func TestDataset_Dimensions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		d        Dataset
		expected int
	}{
		{name: "positive", d: NewDataset("a", []geom.Point{{1, 2, 3}}, time.Now()), expected: 3},
		{name: "empty", d: NewDataset("a", nil, time.Now()), expected: 0},
	}
	for _, test := range tests {
		if got := test.d.Dimensions(); got != test.expected {
			t.Errorf("%s: dimensions got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestDataset_Items(t *testing.T) {
	t.Parallel()
	d := NewDataset("a", []geom.Point{{1, 2}, {3, 4}}, time.Now())
	items := d.Items()
	if len(items) != 2 {
		t.Fatalf("items length got: %v, expected: %v", len(items), 2)
	}
	for i := range items {
		if !items[i].(geom.Point).Equal(d.Points[i]) {
			t.Errorf("item %d got: %v, expected: %v", i, items[i], d.Points[i])
		}
	}
	if NewDataset("a", nil, time.Now()).ID == d.ID {
		t.Errorf("every dataset must get its own id")
	}
}
