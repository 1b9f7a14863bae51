// Package file reads and writes point sets as TOML documents:
//
//	name = "sample"
//	points = [[0.0, 1.5], [2.0, -3.0]]
//
// Coordinates must be written as floats.
package file

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/go-sod/kdrange/internal/geom"
)

type document struct {
	Name   string      `toml:"name"`
	Points [][]float64 `toml:"points"`
}

// PointSet is the in-memory form of a dataset file.
type PointSet struct {
	Name   string
	Points []geom.Point
}

func Load(path string) (PointSet, error) {
	var doc document
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return PointSet{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return PointSet{}, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}
	return fromDocument(doc), nil
}

func Decode(r io.Reader) (PointSet, error) {
	var doc document
	if _, err := toml.DecodeReader(r, &doc); err != nil {
		return PointSet{}, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc), nil
}

func Write(w io.Writer, set PointSet) error {
	doc := document{Name: set.Name, Points: make([][]float64, len(set.Points))}
	for i := range set.Points {
		doc.Points[i] = set.Points[i]
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func fromDocument(doc document) PointSet {
	set := PointSet{Name: doc.Name, Points: make([]geom.Point, len(doc.Points))}
	for i := range doc.Points {
		set.Points[i] = geom.New(doc.Points[i])
	}
	return set
}
