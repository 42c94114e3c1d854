package shapefile

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const (
	dbfHeaderSize     = 32
	dbfDescriptorSize = 32
	dbfTerminator     = 0x0D
)

type dbfField struct {
	name     string
	typ      byte
	length   int
	decimals int
}

type dbfTable struct {
	fields []dbfField
	rows   []map[string]any
}

// decodeDBF reads the attribute table. Text is decoded with enc when non-nil.
func decodeDBF(ctx context.Context, name string, data []byte, enc encoding.Encoding) (*dbfTable, error) {
	c := newCursor(name, data)
	if err := c.need(dbfHeaderSize, "dbf header"); err != nil {
		return nil, err
	}

	_, _ = c.uint8("version")
	_ = c.skip(3, "last update")
	numRecords, _ := c.uint32LE("record count")
	headerLen, _ := c.uint16LE("header length")
	recordLen, _ := c.uint16LE("record length")
	_ = c.skip(20, "reserved")

	if int(headerLen) > len(data) {
		return nil, parseErrorf(name, 8, "header length %d exceeds buffer length %d", headerLen, len(data))
	}

	text := textDecoder(enc)

	var (
		fields []dbfField
		width  = 1 // deletion flag
	)
	for {
		if c.off >= int(headerLen) {
			return nil, parseErrorf(name, c.off, "field descriptors run past header length %d", headerLen)
		}
		if c.buf[c.off] == dbfTerminator {
			break
		}
		if c.off+dbfDescriptorSize > int(headerLen) {
			return nil, parseErrorf(name, c.off, "field descriptors run past header length %d", headerLen)
		}
		d, err := c.sub(dbfDescriptorSize, "field descriptor")
		if err != nil {
			return nil, err
		}
		raw, _ := d.bytes(11, "field name")
		typ, _ := d.uint8("field type")
		_ = d.skip(4, "field address")
		length, _ := d.uint8("field length")
		decimals, _ := d.uint8("field decimals")

		if i := strings.IndexByte(string(raw), 0); i >= 0 {
			raw = raw[:i]
		}
		fields = append(fields, dbfField{
			name:     strings.TrimSpace(text(raw)),
			typ:      typ,
			length:   int(length),
			decimals: int(decimals),
		})
		width += int(length)
	}

	if width > int(recordLen) {
		return nil, parseErrorf(name, 10, "record length %d is shorter than field widths %d", recordLen, width)
	}

	c.off = int(headerLen)
	if needed := int64(numRecords) * int64(recordLen); needed > int64(c.remaining()) {
		return nil, parseErrorf(name, c.off, "%d records of %d bytes need %d bytes, have %d",
			numRecords, recordLen, needed, c.remaining())
	}

	rows := make([]map[string]any, 0, numRecords)
	for i := 0; i < int(numRecords); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, eris.Wrap(err, "shapefile: decode dbf")
			}
		}
		rec, _ := c.sub(int(recordLen), "record")
		_ = rec.skip(1, "deletion flag")

		props := make(map[string]any, len(fields))
		for _, f := range fields {
			raw, _ := rec.bytes(f.length, "field value")
			props[f.name] = convertValue(f, text(raw))
		}
		rows = append(rows, props)
	}

	return &dbfTable{fields: fields, rows: rows}, nil
}

func textDecoder(enc encoding.Encoding) func([]byte) string {
	if enc == nil {
		return func(b []byte) string { return string(b) }
	}
	dec := enc.NewDecoder()
	return func(b []byte) string {
		out, err := dec.Bytes(b)
		if err != nil {
			return string(b)
		}
		return string(out)
	}
}

// convertValue turns a fixed-width field into a property value.
func convertValue(f dbfField, raw string) any {
	s := strings.TrimSpace(strings.Trim(raw, "\x00"))

	switch f.typ {
	case 'C':
		return s
	case 'N', 'F':
		if s == "" {
			return nil
		}
		if f.typ == 'N' && f.decimals == 0 {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				return v
			}
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return nil
	case 'L':
		switch s {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		default:
			return nil
		}
	case 'D':
		if s == "" {
			return nil
		}
		if t, err := time.Parse("20060102", s); err == nil {
			return t.Format("2006-01-02")
		}
		return s
	default:
		return s
	}
}

// windowsCodePages maps code page numbers found in .cpg files to WHATWG
// encoding labels.
var windowsCodePages = map[string]string{
	"65001": "utf-8",
	"936":   "gbk",
	"950":   "big5",
	"932":   "shift_jis",
	"949":   "euc-kr",
	"866":   "ibm866",
	"874":   "windows-874",
	"1250":  "windows-1250",
	"1251":  "windows-1251",
	"1252":  "windows-1252",
	"1253":  "windows-1253",
	"1254":  "windows-1254",
	"1255":  "windows-1255",
	"1256":  "windows-1256",
	"1257":  "windows-1257",
	"1258":  "windows-1258",
	"28591": "iso-8859-1",
	"28592": "iso-8859-2",
}

// CodePage resolves the contents of a .cpg file. UTF-8 and empty input
// return a nil encoding, meaning bytes are used as-is.
func CodePage(cpg string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(cpg))
	label = strings.TrimPrefix(label, "ansi ")
	label = strings.TrimPrefix(label, "cp")
	label = strings.TrimSpace(label)
	if mapped, ok := windowsCodePages[label]; ok {
		label = mapped
	}

	switch label {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, eris.Wrapf(err, "shapefile: unsupported code page %q", cpg)
	}
	return enc, nil
}
