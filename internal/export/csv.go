package export

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geokit/internal/model"
)

// encodeCSV writes one row per feature, every line ending in "\n". String
// cells are always quoted and other scalars never are. An empty collection
// yields "".
func encodeCSV(fc *model.FeatureCollection) (string, error) {
	if fc.Len() == 0 {
		return "", nil
	}

	keys := propertyKeys(fc)

	var b strings.Builder
	b.WriteString("geometry_type,coordinates")
	for _, k := range keys {
		b.WriteByte(',')
		b.WriteString(headerCell(k))
	}
	b.WriteByte('\n')

	for i, f := range fc.Features {
		coords, err := json.Marshal(model.Coordinates(f.Geometry))
		if err != nil {
			return "", eris.Wrapf(err, "export: encode coordinates of feature %d", i)
		}

		b.WriteString(model.GeometryType(f.Geometry))
		b.WriteByte(',')
		b.WriteString(quote(string(coords)))
		for _, k := range keys {
			cell, err := csvCell(f.Properties[k])
			if err != nil {
				return "", eris.Wrapf(err, "export: encode %s of feature %d", k, i)
			}
			b.WriteByte(',')
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// propertyKeys returns the union of property keys in first-seen order. Keys
// are visited in sorted order within each feature since maps are unordered.
// Properties named like the fixed columns are dropped; the geometry wins.
func propertyKeys(fc *model.FeatureCollection) []string {
	seen := map[string]bool{"geometry_type": true, "coordinates": true}
	var keys []string
	for _, f := range fc.Features {
		fk := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			if !seen[k] {
				fk = append(fk, k)
			}
		}
		sort.Strings(fk)
		for _, k := range fk {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func csvCell(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return quote(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int:
		return strconv.Itoa(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return quote(string(b)), nil
	}
}

func headerCell(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
