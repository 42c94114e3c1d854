package shapefile

import (
	"encoding/binary"
	"math"
)

// cursor reads fixed-width values from a byte buffer, checking bounds before
// every read. Offsets are absolute within the original file so errors can
// point at the failing byte.
type cursor struct {
	file string
	buf  []byte
	off  int
	end  int
}

func newCursor(file string, buf []byte) *cursor {
	return &cursor{file: file, buf: buf, end: len(buf)}
}

func (c *cursor) remaining() int {
	return c.end - c.off
}

func (c *cursor) need(n int, what string) error {
	if n < 0 || n > c.remaining() {
		return parseErrorf(c.file, c.off, "truncated %s: need %d bytes, have %d", what, n, c.remaining())
	}
	return nil
}

// sub returns a cursor over the next n bytes and advances past them.
func (c *cursor) sub(n int, what string) (*cursor, error) {
	if err := c.need(n, what); err != nil {
		return nil, err
	}
	s := &cursor{file: c.file, buf: c.buf, off: c.off, end: c.off + n}
	c.off += n
	return s, nil
}

func (c *cursor) skip(n int, what string) error {
	if err := c.need(n, what); err != nil {
		return err
	}
	c.off += n
	return nil
}

func (c *cursor) bytes(n int, what string) ([]byte, error) {
	if err := c.need(n, what); err != nil {
		return nil, err
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) uint8(what string) (uint8, error) {
	if err := c.need(1, what); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) uint16LE(what string) (uint16, error) {
	b, err := c.bytes(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) uint32LE(what string) (uint32, error) {
	b, err := c.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) int32LE(what string) (int32, error) {
	v, err := c.uint32LE(what)
	return int32(v), err
}

func (c *cursor) int32BE(what string) (int32, error) {
	b, err := c.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (c *cursor) float64LE(what string) (float64, error) {
	b, err := c.bytes(8, what)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}
