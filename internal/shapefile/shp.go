package shapefile

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

const (
	fileCode       = 9994
	headerSize     = 100
	indexEntrySize = 8

	// ctxCheckInterval is how many records are decoded between context checks.
	ctxCheckInterval = 1024
)

// Shape type codes from the ESRI Shapefile Technical Description.
const (
	shapeNull        int32 = 0
	shapePoint       int32 = 1
	shapePolyLine    int32 = 3
	shapePolygon     int32 = 5
	shapeMultiPoint  int32 = 8
	shapePointZ      int32 = 11
	shapePolyLineZ   int32 = 13
	shapePolygonZ    int32 = 15
	shapeMultiPointZ int32 = 18
	shapePointM      int32 = 21
	shapePolyLineM   int32 = 23
	shapePolygonM    int32 = 25
	shapeMultiPointM int32 = 28
)

// fileHeader is the 100-byte header shared by .shp and .shx files.
type fileHeader struct {
	length    int // bytes, as declared
	shapeType int32
	bbox      [4]float64
}

func readFileHeader(c *cursor) (fileHeader, error) {
	var h fileHeader
	if err := c.need(headerSize, "file header"); err != nil {
		return h, err
	}

	code, _ := c.int32BE("file code")
	if code != fileCode {
		return h, parseErrorf(c.file, 0, "bad file code %d, want %d", code, fileCode)
	}
	_ = c.skip(20, "unused header fields")

	words, _ := c.int32BE("file length")
	h.length = int(words) * 2
	if h.length < headerSize {
		return h, parseErrorf(c.file, 24, "declared file length %d is smaller than the header", h.length)
	}
	if h.length > len(c.buf) {
		return h, parseErrorf(c.file, 24, "declared file length %d exceeds buffer length %d", h.length, len(c.buf))
	}

	_, _ = c.int32LE("version")
	h.shapeType, _ = c.int32LE("shape type")
	for i := range h.bbox {
		h.bbox[i], _ = c.float64LE("bounding box")
	}
	_ = c.skip(32, "z/m range")

	c.end = h.length
	return h, nil
}

// decodeSHP decodes every record of a .shp buffer. It returns the geometries
// in file order along with each record's starting offset.
func decodeSHP(ctx context.Context, name string, data []byte) ([]geom.T, []int, error) {
	c := newCursor(name, data)
	if _, err := readFileHeader(c); err != nil {
		return nil, nil, err
	}

	var (
		shapes  []geom.T
		offsets []int
	)
	for c.remaining() > 0 {
		if len(shapes)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, eris.Wrap(err, "shapefile: decode shp")
			}
		}

		start := c.off
		if _, err := c.int32BE("record number"); err != nil {
			return nil, nil, err
		}
		words, err := c.int32BE("record content length")
		if err != nil {
			return nil, nil, err
		}
		if words < 2 {
			return nil, nil, parseErrorf(name, start+4, "invalid record content length %d", words)
		}
		content, err := c.sub(int(words)*2, "record content")
		if err != nil {
			return nil, nil, err
		}

		g, err := decodeShape(content)
		if err != nil {
			return nil, nil, err
		}
		shapes = append(shapes, g)
		offsets = append(offsets, start)
	}

	return shapes, offsets, nil
}

func decodeShape(c *cursor) (geom.T, error) {
	typ, err := c.int32LE("shape type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case shapeNull:
		return nil, nil
	case shapePoint, shapePointZ, shapePointM:
		x, err := c.float64LE("point x")
		if err != nil {
			return nil, err
		}
		y, err := c.float64LE("point y")
		if err != nil {
			return nil, err
		}
		return geom.NewPointFlat(geom.XY, []float64{x, y}), nil
	case shapePolyLine, shapePolyLineZ, shapePolyLineM:
		parts, flat, err := readParts(c)
		if err != nil || len(parts) == 0 {
			return nil, err
		}
		return lineGeometry(parts, flat), nil
	case shapePolygon, shapePolygonZ, shapePolygonM:
		parts, flat, err := readParts(c)
		if err != nil || len(parts) == 0 {
			return nil, err
		}
		return polygonGeometry(parts, flat), nil
	case shapeMultiPoint, shapeMultiPointZ, shapeMultiPointM:
		return readMultiPoint(c)
	default:
		return nil, parseErrorf(c.file, c.off-4, "unsupported shape type %d", typ)
	}
}

// readParts reads the bounding box, counts, part index and XY points of a
// PolyLine or Polygon record. Part indices are converted to flat-coordinate
// end offsets.
func readParts(c *cursor) ([]int, []float64, error) {
	if err := c.skip(32, "bounding box"); err != nil {
		return nil, nil, err
	}
	countsAt := c.off
	numParts, err := c.int32LE("part count")
	if err != nil {
		return nil, nil, err
	}
	numPoints, err := c.int32LE("point count")
	if err != nil {
		return nil, nil, err
	}
	if numParts < 0 || numPoints < 0 {
		return nil, nil, parseErrorf(c.file, countsAt, "negative counts: numParts=%d numPoints=%d", numParts, numPoints)
	}
	needed := int64(numParts)*4 + int64(numPoints)*16
	if needed > int64(c.remaining()) {
		return nil, nil, parseErrorf(c.file, c.off,
			"numParts=%d numPoints=%d need %d bytes, record has %d", numParts, numPoints, needed, c.remaining())
	}
	if numParts == 0 {
		if numPoints > 0 {
			return nil, nil, parseErrorf(c.file, countsAt, "%d points without parts", numPoints)
		}
		return nil, nil, nil
	}

	starts := make([]int, numParts)
	for i := range starts {
		at := c.off
		v, _ := c.int32LE("part index")
		switch {
		case i == 0 && v != 0:
			return nil, nil, parseErrorf(c.file, at, "first part starts at %d, want 0", v)
		case v < 0 || v >= numPoints:
			return nil, nil, parseErrorf(c.file, at, "part index %d out of range [0,%d)", v, numPoints)
		case i > 0 && int(v) <= starts[i-1]:
			return nil, nil, parseErrorf(c.file, at, "part index %d is not increasing", v)
		}
		starts[i] = int(v)
	}

	flat := make([]float64, 2*numPoints)
	for i := range flat {
		flat[i], _ = c.float64LE("point")
	}

	ends := make([]int, numParts)
	for i := range starts {
		if i+1 < len(starts) {
			ends[i] = 2 * starts[i+1]
		} else {
			ends[i] = len(flat)
		}
	}
	return ends, flat, nil
}

func readMultiPoint(c *cursor) (geom.T, error) {
	if err := c.skip(32, "bounding box"); err != nil {
		return nil, err
	}
	countAt := c.off
	numPoints, err := c.int32LE("point count")
	if err != nil {
		return nil, err
	}
	if numPoints < 0 {
		return nil, parseErrorf(c.file, countAt, "negative point count %d", numPoints)
	}
	if needed := int64(numPoints) * 16; needed > int64(c.remaining()) {
		return nil, parseErrorf(c.file, c.off, "numPoints=%d needs %d bytes, record has %d", numPoints, needed, c.remaining())
	}
	if numPoints == 0 {
		return nil, nil
	}

	flat := make([]float64, 2*numPoints)
	for i := range flat {
		flat[i], _ = c.float64LE("point")
	}
	return geom.NewMultiPointFlat(geom.XY, flat), nil
}

func lineGeometry(ends []int, flat []float64) geom.T {
	if len(ends) == 1 {
		return geom.NewLineStringFlat(geom.XY, flat)
	}
	return geom.NewMultiLineStringFlat(geom.XY, flat, ends)
}

// polygonGeometry groups rings into polygons. Clockwise rings start a new
// polygon; counter-clockwise rings are holes of the preceding polygon. A hole
// with nothing before it is promoted to an exterior ring. Unclosed rings are
// closed.
func polygonGeometry(ends []int, flat []float64) geom.T {
	var polys [][][]float64
	start := 0
	for _, end := range ends {
		ring := closeRing(flat[start:end])
		start = end

		if len(polys) == 0 || signedArea(ring) <= 0 {
			polys = append(polys, [][]float64{ring})
			continue
		}
		last := len(polys) - 1
		polys[last] = append(polys[last], ring)
	}

	if len(polys) == 1 {
		pFlat, pEnds := flatten(polys[0])
		return geom.NewPolygonFlat(geom.XY, pFlat, pEnds)
	}

	var (
		mpFlat []float64
		endss  [][]int
	)
	for _, rings := range polys {
		ringEnds := make([]int, 0, len(rings))
		for _, r := range rings {
			mpFlat = append(mpFlat, r...)
			ringEnds = append(ringEnds, len(mpFlat))
		}
		endss = append(endss, ringEnds)
	}
	return geom.NewMultiPolygonFlat(geom.XY, mpFlat, endss)
}

func flatten(rings [][]float64) ([]float64, []int) {
	var flat []float64
	ends := make([]int, 0, len(rings))
	for _, r := range rings {
		flat = append(flat, r...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func closeRing(r []float64) []float64 {
	n := len(r)
	if n < 2 || (r[0] == r[n-2] && r[1] == r[n-1]) {
		return r
	}
	out := make([]float64, n, n+2)
	copy(out, r)
	return append(out, r[0], r[1])
}

// signedArea is the planar shoelace area of a flat XY ring; negative for
// clockwise rings.
func signedArea(r []float64) float64 {
	var sum float64
	for i := 0; i+3 < len(r); i += 2 {
		sum += r[i]*r[i+3] - r[i+2]*r[i+1]
	}
	return sum / 2
}

// shxEntry is one record of a .shx index, both values in bytes.
type shxEntry struct {
	offset int
	length int
}

func decodeSHX(ctx context.Context, name string, data []byte) ([]shxEntry, error) {
	c := newCursor(name, data)
	h, err := readFileHeader(c)
	if err != nil {
		return nil, err
	}
	if (h.length-headerSize)%indexEntrySize != 0 {
		return nil, parseErrorf(name, 24, "index length %d is not a whole number of entries", h.length)
	}

	entries := make([]shxEntry, 0, (h.length-headerSize)/indexEntrySize)
	for c.remaining() > 0 {
		if len(entries)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, eris.Wrap(err, "shapefile: decode shx")
			}
		}
		off, _ := c.int32BE("index offset")
		length, _ := c.int32BE("index content length")
		entries = append(entries, shxEntry{offset: int(off) * 2, length: int(length) * 2})
	}
	return entries, nil
}
