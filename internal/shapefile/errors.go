package shapefile

import (
	"fmt"
)

// ParseError reports malformed binary content. Offset is the absolute byte
// position in File where decoding failed.
type ParseError struct {
	File   string
	Offset int64
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("shapefile: %s at offset %d: %s", e.File, e.Offset, e.Reason)
}

func parseErrorf(file string, offset int, format string, args ...any) *ParseError {
	return &ParseError{File: file, Offset: int64(offset), Reason: fmt.Sprintf(format, args...)}
}
