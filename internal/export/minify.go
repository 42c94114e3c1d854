package export

import (
	"github.com/rotisserie/eris"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/xml"
)

const (
	jsonMediaType = "application/json"
	xmlMediaType  = "text/xml"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	// Coordinates must stay valid JSON numbers ("0.5", never ".5").
	m.Add(jsonMediaType, &json.Minifier{KeepNumbers: true})
	m.AddFunc(xmlMediaType, xml.Minify)
	return m
}

// Minify compacts exported GeoJSON and KML. CSV has no insignificant
// whitespace and is returned unchanged.
func Minify(format, data string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}

	var mediaType string
	switch f {
	case GeoJSON:
		mediaType = jsonMediaType
	case KML:
		mediaType = xmlMediaType
	default:
		return data, nil
	}

	out, err := minifier.String(mediaType, data)
	if err != nil {
		return "", eris.Wrapf(err, "export: minify %s", f)
	}
	return out, nil
}
