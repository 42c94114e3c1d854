package shapefile

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geokit/internal/model"
)

// loadConcurrency bounds the number of files read at once.
const loadConcurrency = 4

// NewFileSet keys files by lowercase extension. Files without an extension
// are ignored; a later file replaces an earlier one with the same extension.
func NewFileSet(files ...model.File) model.FileSet {
	fs := make(model.FileSet, len(files))
	for _, f := range files {
		ext := extOf(f.Name)
		if ext == "" {
			continue
		}
		fs[ext] = f
	}
	return fs
}

// LoadFileSet reads the given paths from disk concurrently.
func LoadFileSet(ctx context.Context, paths ...string) (model.FileSet, error) {
	files := make([]model.File, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "shapefile: load files")
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return eris.Wrapf(err, "shapefile: read %s", p)
			}
			files[i] = model.File{Name: filepath.Base(p), Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewFileSet(files...), nil
}

// LoadSiblings loads every file in shpPath's directory that shares its base
// name, e.g. roads.shp, roads.dbf, roads.shx and roads.prj.
func LoadSiblings(ctx context.Context, shpPath string) (model.FileSet, error) {
	dir := filepath.Dir(shpPath)
	stem := strings.TrimSuffix(filepath.Base(shpPath), filepath.Ext(shpPath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrap(err, "shapefile: read directory")
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), stem) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	if len(paths) == 0 {
		return nil, eris.Errorf("shapefile: no files named %s.* in %s", stem, dir)
	}

	return LoadFileSet(ctx, paths...)
}

// FileSetFromZip reads a zipped dataset held in memory. Directory entries
// are skipped and member paths are flattened to their base name.
func FileSetFromZip(data []byte) (model.FileSet, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}

	var files []model.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(filepath.ToSlash(f.Name))
		if strings.HasPrefix(name, ".") || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}

		b, err := readZIPEntry(f)
		if err != nil {
			return nil, err
		}
		files = append(files, model.File{Name: name, Data: b})
	}

	return NewFileSet(files...), nil
}

func readZIPEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, eris.Wrapf(err, "zip: open entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, eris.Wrapf(err, "zip: read entry %s", f.Name)
	}
	return b, nil
}

func extOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
