// Package export serializes feature collections to GeoJSON, CSV and KML.
package export

import (
	"fmt"
	"strings"

	"github.com/sells-group/geokit/internal/model"
)

// Format is an export target.
type Format string

// Supported export formats.
const (
	GeoJSON Format = "geojson"
	CSV     Format = "csv"
	KML     Format = "kml"
)

// Formats lists the supported formats in display order.
var Formats = []Format{GeoJSON, CSV, KML}

// UnsupportedFormatError is returned for any format outside Formats.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("export: unsupported format %q", e.Format)
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Format: s}
}

// Export serializes fc in the named format. A nil collection exports as an
// empty one.
func Export(fc *model.FeatureCollection, format string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if fc == nil {
		fc = model.NewFeatureCollection("")
	}

	switch f {
	case GeoJSON:
		return encodeGeoJSON(fc)
	case CSV:
		return encodeCSV(fc)
	default:
		return encodeKML(fc)
	}
}

// ContentType returns the media type for a format, or "" if unknown.
func ContentType(format string) string {
	f, err := ParseFormat(format)
	if err != nil {
		return ""
	}
	switch f {
	case GeoJSON:
		return "application/geo+json"
	case CSV:
		return "text/csv"
	default:
		return "application/vnd.google-earth.kml+xml"
	}
}

// Extension returns the file extension for a format, dot included, or "" if
// unknown.
func Extension(format string) string {
	f, err := ParseFormat(format)
	if err != nil {
		return ""
	}
	return "." + string(f)
}
