package database

import (
	"bytes"
	"fmt"

	xdr "github.com/davecgh/go-xdr/xdr2"
	"github.com/go-sod/kdrange/internal/geom"
)

// pointsRecord is the XDR layout of a point set: coordinates are flattened row by row.
type pointsRecord struct {
	Dimensions uint32
	Coords     []float64
}

func encodePoints(points []geom.Point) ([]byte, error) {
	var rec pointsRecord
	if len(points) > 0 {
		rec.Dimensions = uint32(points[0].Dimensions())
	}
	rec.Coords = make([]float64, 0, len(points)*int(rec.Dimensions))
	for i, p := range points {
		if p.Dimensions() != int(rec.Dimensions) {
			return nil, fmt.Errorf("point %d: %w", i, geom.ErrDimNotEqual)
		}
		rec.Coords = append(rec.Coords, p...)
	}

	var buf bytes.Buffer
	if _, err := xdr.Marshal(&buf, rec); err != nil {
		return nil, fmt.Errorf("xdr marshal: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePoints(data []byte) ([]geom.Point, error) {
	var rec pointsRecord
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &rec); err != nil {
		return nil, fmt.Errorf("xdr unmarshal: %w", err)
	}
	if rec.Dimensions == 0 {
		if len(rec.Coords) != 0 {
			return nil, fmt.Errorf("%d coordinates without dimensions", len(rec.Coords))
		}
		return nil, nil
	}
	dims := int(rec.Dimensions)
	if len(rec.Coords)%dims != 0 {
		return nil, fmt.Errorf("%d coordinates do not split into %d dimensions", len(rec.Coords), dims)
	}

	points := make([]geom.Point, len(rec.Coords)/dims)
	for i := range points {
		points[i] = geom.New(rec.Coords[i*dims : (i+1)*dims : (i+1)*dims])
	}
	return points, nil
}
