package export

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geokit/internal/model"
)

const kmlNamespace = "http://www.opengis.net/kml/2.2"

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string    `xml:"name"`
	Description string    `xml:"description,omitempty"`
	Point       *kmlPoint `xml:"Point,omitempty"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

// encodeKML writes one Placemark per feature. Only point geometries are
// rendered; other features keep their name and description.
func encodeKML(fc *model.FeatureCollection) (string, error) {
	doc := kmlRoot{Xmlns: kmlNamespace}
	doc.Document.Placemarks = make([]kmlPlacemark, 0, fc.Len())

	for i, f := range fc.Features {
		pm := kmlPlacemark{
			Name:        textProperty(f.Properties, "name"),
			Description: textProperty(f.Properties, "description"),
		}
		if pm.Name == "" {
			pm.Name = fmt.Sprintf("Feature %d", i+1)
		}
		if p, ok := f.Geometry.(*geom.Point); ok && !p.Empty() {
			pm.Point = &kmlPoint{Coordinates: formatCoord(p.X()) + "," + formatCoord(p.Y()) + ",0"}
		}
		doc.Document.Placemarks = append(doc.Document.Placemarks, pm)
	}

	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "export: encode kml")
	}
	return xml.Header + string(b), nil
}

func textProperty(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
