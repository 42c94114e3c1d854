// Package shapefile validates, parses and writes ESRI Shapefile datasets.
package shapefile

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geokit/internal/model"
)

// Parse decodes a shapefile dataset into a feature collection. Feature i
// pairs .shp record i with .dbf row i. The .shp, .dbf and optional .shx are
// decoded concurrently. Malformed content yields a *ParseError and no
// collection.
func Parse(ctx context.Context, files model.FileSet) (*model.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "shapefile: parse")
	}

	shpFile, ok := files["shp"]
	if !ok {
		return nil, &ParseError{File: ".shp", Reason: "file missing"}
	}
	dbfFile, ok := files["dbf"]
	if !ok {
		return nil, &ParseError{File: ".dbf", Reason: "file missing"}
	}
	shpName := fileLabel(shpFile, "shp")
	dbfName := fileLabel(dbfFile, "dbf")

	log := zap.L().With(zap.String("component", "shapefile.parse"), zap.String("file", shpName))

	enc, err := CodePage(string(files["cpg"].Data))
	if err != nil {
		log.Warn("unknown code page, reading attributes as raw bytes", zap.Error(err))
		enc = nil
	}

	var (
		shapes  []geom.T
		offsets []int
		table   *dbfTable
		index   []shxEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shapes, offsets, err = decodeSHP(gctx, shpName, shpFile.Data)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = decodeDBF(gctx, dbfName, dbfFile.Data, enc)
		return err
	})
	shxFile, hasIndex := files["shx"]
	if hasIndex {
		g.Go(func() error {
			var err error
			index, err = decodeSHX(gctx, fileLabel(shxFile, "shx"), shxFile.Data)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(table.rows) != len(shapes) {
		return nil, parseErrorf(dbfName, 4, "dbf has %d records, shp has %d", len(table.rows), len(shapes))
	}
	if hasIndex {
		if err := checkIndex(fileLabel(shxFile, "shx"), index, offsets); err != nil {
			return nil, err
		}
	}

	crs, recognised := DetectCRS(string(files["prj"].Data))
	if files.Has("prj") && !recognised {
		log.Debug("unrecognised projection, assuming default CRS", zap.String("crs", crs))
	}

	features := make([]model.Feature, len(shapes))
	for i, shape := range shapes {
		features[i] = model.Feature{Geometry: shape, Properties: table.rows[i]}
	}

	log.Debug("parsed shapefile",
		zap.Int("features", len(features)),
		zap.Int("fields", len(table.fields)),
		zap.String("crs", crs),
	)

	return model.NewFeatureCollection(crs, features...), nil
}

func checkIndex(name string, index []shxEntry, offsets []int) error {
	if len(index) != len(offsets) {
		return parseErrorf(name, 24, "index has %d entries, shp has %d records", len(index), len(offsets))
	}
	for i, e := range index {
		if e.offset != offsets[i] {
			return parseErrorf(name, headerSize+i*indexEntrySize,
				"index entry %d points to offset %d, record starts at %d", i, e.offset, offsets[i])
		}
	}
	return nil
}

func fileLabel(f model.File, ext string) string {
	if f.Name != "" {
		return f.Name
	}
	return "." + ext
}
