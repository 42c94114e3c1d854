package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geokit/internal/export"
	"github.com/sells-group/geokit/internal/model"
	"github.com/sells-group/geokit/internal/shapefile"
)

// maxFileSize is the per-file upload limit from config, or the package
// default before config is loaded.
func maxFileSize() int64 {
	if cfg == nil {
		return shapefile.MaxFileSize
	}
	return cfg.Upload.MaxFileSize()
}

// readFileSet gathers a dataset from a single .zip or from explicit paths.
// A lone .shp path pulls in its siblings.
func readFileSet(ctx context.Context, paths []string) (model.FileSet, error) {
	if len(paths) == 1 {
		switch strings.ToLower(filepath.Ext(paths[0])) {
		case ".zip":
			data, err := os.ReadFile(paths[0])
			if err != nil {
				return nil, eris.Wrapf(err, "dataset: read %s", paths[0])
			}
			return shapefile.FileSetFromZip(data)
		case ".shp":
			return shapefile.LoadSiblings(ctx, paths[0])
		}
	}
	return shapefile.LoadFileSet(ctx, paths...)
}

// loadDataset reads a .shp (with siblings), .zip or .geojson path into a
// feature collection. Shapefile sets are validated before parsing.
func loadDataset(ctx context.Context, path string) (*model.FeatureCollection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: read %s", path)
		}
		return export.DecodeGeoJSON(data)
	case ".zip", ".shp":
	default:
		return nil, eris.Errorf("dataset: %s: expected .shp, .zip or .geojson", path)
	}

	files, err := readFileSet(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	res := shapefile.Validator{MaxFileSize: maxFileSize()}.Validate(files)
	if !res.Valid {
		return nil, eris.Errorf("dataset: %s: %s", path, res.Message)
	}
	return shapefile.Parse(ctx, res.Files)
}

// datasetStem returns the file name without directory or extension.
func datasetStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parsePoint parses "lng,lat".
func parsePoint(s string) (model.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return model.Point{}, eris.Errorf("point %q: want lng,lat", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.Point{}, eris.Wrapf(err, "point %q: longitude", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.Point{}, eris.Wrapf(err, "point %q: latitude", s)
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return model.Point{}, eris.Errorf("point %q: out of range", s)
	}
	return model.Point{Lng: lng, Lat: lat}, nil
}

// parsePoints parses "lng,lat;lng,lat;...". Empty segments are ignored.
func parsePoints(s string) ([]model.Point, error) {
	var pts []model.Point
	for _, seg := range strings.Split(s, ";") {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		p, err := parsePoint(seg)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// collectionPoints returns every vertex of every feature, in order.
func collectionPoints(fc *model.FeatureCollection) []model.Point {
	var pts []model.Point
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		flat, stride := f.Geometry.FlatCoords(), f.Geometry.Stride()
		for i := 0; i+1 < len(flat); i += stride {
			pts = append(pts, model.Point{Lng: flat[i], Lat: flat[i+1]})
		}
	}
	return pts
}
