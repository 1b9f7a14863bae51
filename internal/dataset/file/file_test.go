package file

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sod/kdrange/internal/geom"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		doc      string
		expected []geom.Point
		err      bool
	}{
		{
			name:     "positive",
			doc:      "name = \"line\"\npoints = [[0.0], [2.0], [4.5]]\n",
			expected: []geom.Point{{0}, {2}, {4.5}},
		},
		{
			name:     "positive_2d",
			doc:      "points = [\n  [-1.0, 2.0],\n  [3.0, -4.0],\n]\n",
			expected: []geom.Point{{-1, 2}, {3, -4}},
		},
		{name: "negative_syntax", doc: "points = [[1.0, ", err: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			set, err := Decode(strings.NewReader(test.doc))
			if test.err {
				if err == nil {
					t.Errorf("decoding %q must fail", test.doc)
				}
				return
			}
			if err != nil {
				t.Fatalf("the error should not be returned: %v", err)
			}
			if len(set.Points) != len(test.expected) {
				t.Fatalf("points length got: %v, expected: %v", len(set.Points), len(test.expected))
			}
			for i := range set.Points {
				if !set.Points[i].Equal(test.expected[i]) {
					t.Errorf("point %d got: %v, expected: %v", i, set.Points[i], test.expected[i])
				}
			}
		})
	}
}

func TestWriteLoad(t *testing.T) {
	t.Parallel()
	dir, err := ioutil.TempDir("", "kdrange-file")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	set := PointSet{Name: "random", Points: []geom.Point{{-100, 3}, {0, 0}, {7, 99}}}
	var buf bytes.Buffer
	if err := Write(&buf, set); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	path := filepath.Join(dir, "points.toml")
	if err := ioutil.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("the error should not be returned: %v\n%s", err, buf.String())
	}
	if got.Name != set.Name || len(got.Points) != len(set.Points) {
		t.Fatalf("loaded set got: %v, expected: %v", got, set)
	}
	for i := range got.Points {
		if !got.Points[i].Equal(set.Points[i]) {
			t.Errorf("point %d got: %v, expected: %v", i, got.Points[i], set.Points[i])
		}
	}
}

func TestLoad_UnknownKeys(t *testing.T) {
	t.Parallel()
	dir, err := ioutil.TempDir("", "kdrange-file")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "points.toml")
	if err := ioutil.WriteFile(path, []byte("pionts = [[1.0]]\n"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("unknown keys must be rejected")
	}
}

func TestWrite_Decode(t *testing.T) {
	t.Parallel()
	set := PointSet{Name: "integral", Points: []geom.Point{{1}, {-2}, {30}}}
	var buf bytes.Buffer
	if err := Write(&buf, set); err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if len(got.Points) != len(set.Points) {
		t.Fatalf("points length got: %v, expected: %v", len(got.Points), len(set.Points))
	}
	for i := range got.Points {
		if !got.Points[i].Equal(set.Points[i]) {
			t.Errorf("point %d got: %v, expected: %v", i, got.Points[i], set.Points[i])
		}
	}
}
