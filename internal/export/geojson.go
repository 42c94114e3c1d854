package export

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geokit/internal/model"
)

type featureCollection struct {
	Type     string             `json:"type"`
	CRS      *geojson.CRS       `json:"crs,omitempty"`
	Features []*geojson.Feature `json:"features"`
}

func encodeGeoJSON(fc *model.FeatureCollection) (string, error) {
	out := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]*geojson.Feature, 0, fc.Len()),
	}
	if fc.CRS != "" {
		out.CRS = &geojson.CRS{
			Type:       "name",
			Properties: map[string]any{"name": fc.CRS},
		}
	}
	for _, f := range fc.Features {
		out.Features = append(out.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: encodeProperties(f.Properties),
		})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "export: encode geojson")
	}
	return string(b), nil
}

type rawFeature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties json.RawMessage   `json:"properties"`
}

type rawCollection struct {
	Type     string       `json:"type"`
	CRS      *geojson.CRS `json:"crs"`
	Features []rawFeature `json:"features"`
}

// DecodeGeoJSON reads a GeoJSON FeatureCollection. Integer literals in
// properties decode as int64 and numbers written with a fraction or exponent
// as float64, matching what the shapefile parser produces. A named crs member sets the collection CRS.
func DecodeGeoJSON(data []byte) (*model.FeatureCollection, error) {
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "export: decode geojson")
	}
	if raw.Type != "FeatureCollection" {
		return nil, eris.Errorf("export: decode geojson: unexpected type %q", raw.Type)
	}

	fc := model.NewFeatureCollection(crsName(raw.CRS))
	fc.Features = make([]model.Feature, 0, len(raw.Features))
	for i, rf := range raw.Features {
		if rf.Type != "Feature" {
			return nil, eris.Errorf("export: decode geojson: feature %d has type %q", i, rf.Type)
		}
		g, err := rf.Geometry.Decode()
		if err != nil {
			return nil, eris.Wrapf(err, "export: decode geojson: feature %d geometry", i)
		}
		props, err := decodeProperties(rf.Properties)
		if err != nil {
			return nil, eris.Wrapf(err, "export: decode geojson: feature %d properties", i)
		}
		fc.Features = append(fc.Features, model.Feature{Geometry: g, Properties: props})
	}
	return fc, nil
}

func crsName(crs *geojson.CRS) string {
	if crs == nil || crs.Type != "name" {
		return ""
	}
	name, _ := crs.Properties["name"].(string)
	return name
}

func decodeProperties(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var props map[string]any
	if err := dec.Decode(&props); err != nil {
		return nil, err
	}
	for k, v := range props {
		props[k] = normalizeNumber(v)
	}
	return props, nil
}

// jsonFloat marshals whole values with a fractional part ("3.0") so they
// decode back as float64 rather than int64.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(float64(f))
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, '.', '0')
	}
	return b, nil
}

// encodeProperties copies props with every float64 wrapped in jsonFloat.
func encodeProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = wrapFloats(v)
	}
	return out
}

func wrapFloats(v any) any {
	switch t := v.(type) {
	case float64:
		return jsonFloat(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = wrapFloats(t[i])
		}
		return out
	case map[string]any:
		return encodeProperties(t)
	default:
		return v
	}
}

// normalizeNumber turns integer literals into int64 and literals with a
// fraction or exponent into float64.
func normalizeNumber(v any) any {
	switch t := v.(type) {
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			if i, err := t.Int64(); err == nil {
				return i
			}
		}
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case []any:
		for i := range t {
			t[i] = normalizeNumber(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalizeNumber(t[k])
		}
		return t
	default:
		return v
	}
}
