package shapefile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/geokit/internal/model"
)

func fileSet(sizes map[string]int) model.FileSet {
	fs := model.FileSet{}
	for ext, n := range sizes {
		fs[ext] = model.File{Name: "roads." + ext, Data: make([]byte, n)}
	}
	return fs
}

func TestValidate_Valid(t *testing.T) {
	fs := fileSet(map[string]int{"shp": 100, "shx": 100, "dbf": 33, "prj": 10})

	res := Validate(fs)
	assert.True(t, res.Valid)
	assert.Equal(t, "shapefile set is valid", res.Message)
	assert.Equal(t, []string{"dbf", "prj", "shp", "shx"}, res.FoundExtensions)
	assert.Equal(t, fs, res.Files)
	assert.Empty(t, res.MissingFiles)
}

func TestValidate_Missing(t *testing.T) {
	tests := []struct {
		name    string
		sizes   map[string]int
		missing []string
		message string
	}{
		{"missing shx", map[string]int{"shp": 1, "dbf": 1}, []string{"shx"}, "missing required files: .shx"},
		{"only prj", map[string]int{"prj": 1}, []string{"shp", "shx", "dbf"}, "missing required files: .shp, .shx, .dbf"},
		{"empty", nil, []string{"shp", "shx", "dbf"}, "missing required files: .shp, .shx, .dbf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Validate(fileSet(tt.sizes))
			assert.False(t, res.Valid)
			assert.Equal(t, tt.missing, res.MissingFiles)
			assert.Equal(t, tt.message, res.Message)
			assert.Nil(t, res.Files)
		})
	}
}

func TestValidate_MissingCheckedBeforeSize(t *testing.T) {
	res := Validator{MaxFileSize: 10}.Validate(fileSet(map[string]int{"shp": 500, "dbf": 1}))
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"shx"}, res.MissingFiles)
	assert.Empty(t, res.OversizedFiles)
}

func TestValidate_Oversized(t *testing.T) {
	v := Validator{MaxFileSize: 1024 * 1024}
	fs := fileSet(map[string]int{"shp": 2 * 1024 * 1024, "shx": 100, "dbf": 100, "cpg": 1024*1024 + 1})

	res := v.Validate(fs)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"roads.cpg", "roads.shp"}, res.OversizedFiles)
	assert.Equal(t, "files too large: roads.cpg, roads.shp (max 1MB)", res.Message)
}

func TestValidate_ExactLimitAllowed(t *testing.T) {
	v := Validator{MaxFileSize: 64}
	res := v.Validate(fileSet(map[string]int{"shp": 64, "shx": 64, "dbf": 64}))
	assert.True(t, res.Valid)
}

func TestValidate_DefaultLimit(t *testing.T) {
	fs := fileSet(map[string]int{"shp": 1, "shx": 1, "dbf": 1})
	fs["dbf"] = model.File{Data: make([]byte, MaxFileSize+1)}

	res := Validator{}.Validate(fs)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{".dbf"}, res.OversizedFiles)
	assert.Contains(t, res.Message, "(max 50MB)")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "50MB", formatSize(MaxFileSize))
	assert.Equal(t, "1000 bytes", formatSize(1000))
}
