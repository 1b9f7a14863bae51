package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/google/uuid"
)

func TestKey(t *testing.T) {
	t.Parallel()
	id, other := uuid.New(), uuid.New()
	base := Key(id, geom.Point{0, 0}, geom.Point{1, 1})
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{name: "same", key: Key(id, geom.Point{0, 0}, geom.Point{1, 1}), expected: true},
		{name: "other_dataset", key: Key(other, geom.Point{0, 0}, geom.Point{1, 1}), expected: false},
		{name: "other_min", key: Key(id, geom.Point{0, 0.5}, geom.Point{1, 1}), expected: false},
		{name: "swapped_corners", key: Key(id, geom.Point{1, 1}, geom.Point{0, 0}), expected: false},
	}
	for _, test := range tests {
		if got := test.key == base; got != test.expected {
			t.Errorf("%s: key equality got: %v, expected: %v", test.name, got, test.expected)
		}
	}
	if !strings.HasPrefix(base, keyPrefix+id.String()+":") {
		t.Errorf("key %s must start with the dataset id", base)
	}
}

func TestNew_Noop(t *testing.T) {
	t.Parallel()
	c := New(&Config{})
	if _, ok := c.(Noop); !ok {
		t.Fatalf("an empty redis address must give the no-op cache, got: %T", c)
	}
	ctx := context.Background()
	if err := c.Set(ctx, "k", []geom.Point{{1}}); err != nil {
		t.Errorf("the error should not be returned: %v", err)
	}
	points, ok, err := c.Get(ctx, "k")
	if err != nil || ok || points != nil {
		t.Errorf("no-op get got: %v/%v/%v, expected: nil/false/nil", points, ok, err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("the error should not be returned: %v", err)
	}
}

func TestNew_Redis(t *testing.T) {
	t.Parallel()
	c := New(&Config{RedisAddr: "127.0.0.1:0"})
	defer c.Close()
	if _, ok := c.(*redisCache); !ok {
		t.Fatalf("a redis address must give the redis cache, got: %T", c)
	}
}
