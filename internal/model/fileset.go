package model

import (
	"sort"
)

// File is one uploaded member of a shapefile dataset.
type File struct {
	Name string
	Data []byte
}

// Size returns the file length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// FileSet maps a lowercase extension without the leading dot ("shp",
// "dbf", ...) to its file. Buffers are never modified once the set is built.
type FileSet map[string]File

// Has reports whether the set contains a file with the given extension.
func (fs FileSet) Has(ext string) bool {
	_, ok := fs[ext]
	return ok
}

// Extensions returns the extensions present, sorted.
func (fs FileSet) Extensions() []string {
	exts := make([]string, 0, len(fs))
	for ext := range fs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
