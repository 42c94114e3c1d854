package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/geokit/internal/model"
	"github.com/sells-group/geokit/internal/shapefile"
)

// parcels is two adjacent one-degree squares.
func parcels() *model.FeatureCollection {
	west := model.Ring{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 1}, {Lng: 1, Lat: 1}, {Lng: 1, Lat: 0}}
	east := model.Ring{{Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 2, Lat: 1}, {Lng: 2, Lat: 0}}
	return model.NewFeatureCollection("",
		model.Feature{
			Geometry:   model.NewPolygon(west),
			Properties: map[string]any{"name": "west", "lots": int64(3)},
		},
		model.Feature{
			Geometry:   model.NewPolygon(east),
			Properties: map[string]any{"name": "east", "lots": int64(5)},
		},
	)
}

// writeParcels writes parcels() as a shapefile set in dir and returns the
// .shp path.
func writeParcels(t *testing.T, dir string) string {
	t.Helper()
	base := filepath.Join(dir, "parcels")
	require.NoError(t, shapefile.Write(base, parcels()))
	return base + ".shp"
}

// zipParcels packs the shapefile set at shpPath into a zip archive,
// skipping the listed extensions.
func zipParcels(t *testing.T, shpPath string, skip ...string) string {
	t.Helper()
	base := shpPath[:len(shpPath)-len(".shp")]

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
outer:
	for _, ext := range []string{"shp", "shx", "dbf", "prj"} {
		for _, s := range skip {
			if s == ext {
				continue outer
			}
		}
		data, err := os.ReadFile(base + "." + ext)
		require.NoError(t, err)
		w, err := zw.Create("upload/parcels." + ext)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(filepath.Dir(shpPath), "upload.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}
