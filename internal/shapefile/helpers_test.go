package shapefile

import (
	"bytes"
	"encoding/binary"
	"strings"
)

type xy [2]float64

func shpHeader(shapeType int32, length int) []byte {
	b := make([]byte, headerSize)
	binary.BigEndian.PutUint32(b[0:], fileCode)
	binary.BigEndian.PutUint32(b[24:], uint32(length/2))
	binary.LittleEndian.PutUint32(b[28:], 1000)
	binary.LittleEndian.PutUint32(b[32:], uint32(shapeType))
	return b
}

// buildSHP assembles a .shp buffer from record contents.
func buildSHP(shapeType int32, contents ...[]byte) []byte {
	var body bytes.Buffer
	for i, c := range contents {
		_ = binary.Write(&body, binary.BigEndian, int32(i+1))
		_ = binary.Write(&body, binary.BigEndian, int32(len(c)/2))
		body.Write(c)
	}
	return append(shpHeader(shapeType, headerSize+body.Len()), body.Bytes()...)
}

// buildSHX assembles the index matching buildSHP for the same contents.
func buildSHX(shapeType int32, contents ...[]byte) []byte {
	var body bytes.Buffer
	off := headerSize
	for _, c := range contents {
		_ = binary.Write(&body, binary.BigEndian, int32(off/2))
		_ = binary.Write(&body, binary.BigEndian, int32(len(c)/2))
		off += 8 + len(c)
	}
	return append(shpHeader(shapeType, headerSize+body.Len()), body.Bytes()...)
}

func nullContent() []byte {
	return le(shapeNull)
}

func pointContent(x, y float64) []byte {
	return le(shapePoint, x, y)
}

func pointZContent(x, y, z, m float64) []byte {
	return le(shapePointZ, x, y, z, m)
}

func partsContent(shapeType int32, parts []int32, pts ...xy) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, shapeType)
	b.Write(make([]byte, 32))
	_ = binary.Write(&b, binary.LittleEndian, int32(len(parts)))
	_ = binary.Write(&b, binary.LittleEndian, int32(len(pts)))
	_ = binary.Write(&b, binary.LittleEndian, parts)
	for _, p := range pts {
		_ = binary.Write(&b, binary.LittleEndian, p)
	}
	return b.Bytes()
}

func multiPointContent(pts ...xy) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, shapeMultiPoint)
	b.Write(make([]byte, 32))
	_ = binary.Write(&b, binary.LittleEndian, int32(len(pts)))
	for _, p := range pts {
		_ = binary.Write(&b, binary.LittleEndian, p)
	}
	return b.Bytes()
}

func le(shapeType int32, vals ...float64) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, shapeType)
	_ = binary.Write(&b, binary.LittleEndian, vals)
	return b.Bytes()
}

type testField struct {
	name     string
	typ      byte
	length   int
	decimals int
}

// buildDBF assembles a dBASE III table. Row values are raw bytes padded with
// spaces to the field width.
func buildDBF(fields []testField, rows ...[]string) []byte {
	recordLen := 1
	for _, f := range fields {
		recordLen += f.length
	}
	headerLen := dbfHeaderSize + dbfDescriptorSize*len(fields) + 1

	var b bytes.Buffer
	b.Write([]byte{3, 124, 1, 1})
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(rows)))
	_ = binary.Write(&b, binary.LittleEndian, uint16(headerLen))
	_ = binary.Write(&b, binary.LittleEndian, uint16(recordLen))
	b.Write(make([]byte, 20))

	for _, f := range fields {
		name := make([]byte, 11)
		copy(name, f.name)
		b.Write(name)
		b.WriteByte(f.typ)
		b.Write(make([]byte, 4))
		b.WriteByte(byte(f.length))
		b.WriteByte(byte(f.decimals))
		b.Write(make([]byte, 14))
	}
	b.WriteByte(dbfTerminator)

	for _, row := range rows {
		b.WriteByte(' ')
		for i, f := range fields {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if len(v) < f.length {
				v += strings.Repeat(" ", f.length-len(v))
			}
			b.WriteString(v[:f.length])
		}
	}
	b.WriteByte(0x1A)
	return b.Bytes()
}

// squareCW is a clockwise unit square starting at (x, y).
func squareCW(x, y, size float64) []xy {
	return []xy{{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}, {x, y}}
}

// squareCCW is the same square wound counter-clockwise.
func squareCCW(x, y, size float64) []xy {
	return []xy{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}
}

func concat(rings ...[]xy) ([]int32, []xy) {
	var (
		parts []int32
		pts   []xy
	)
	for _, r := range rings {
		parts = append(parts, int32(len(pts)))
		pts = append(pts, r...)
	}
	return parts, pts
}
