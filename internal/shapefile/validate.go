package shapefile

import (
	"fmt"
	"strings"

	"github.com/sells-group/geokit/internal/model"
)

// MaxFileSize is the default per-file upload limit (50 MiB).
const MaxFileSize int64 = 50 * 1024 * 1024

// RequiredExtensions must all be present in a dataset.
var RequiredExtensions = []string{"shp", "shx", "dbf"}

// OptionalExtensions are recognised companions of a dataset.
var OptionalExtensions = []string{"prj", "cpg", "sbn", "sbx"}

// ValidationResult is the outcome of checking a file set. It is a value,
// never an error, so callers can show Message directly.
type ValidationResult struct {
	Valid           bool          `json:"valid" yaml:"valid"`
	Message         string        `json:"message" yaml:"message"`
	MissingFiles    []string      `json:"missing_files,omitempty" yaml:"missing_files,omitempty"`
	OversizedFiles  []string      `json:"oversized_files,omitempty" yaml:"oversized_files,omitempty"`
	Files           model.FileSet `json:"-" yaml:"-"`
	FoundExtensions []string      `json:"found_extensions,omitempty" yaml:"found_extensions,omitempty"`
}

// Validator checks file sets against a size limit.
type Validator struct {
	MaxFileSize int64
}

// Validate checks files with the default 50 MiB limit.
func Validate(files model.FileSet) ValidationResult {
	return Validator{MaxFileSize: MaxFileSize}.Validate(files)
}

// Validate checks that every required extension is present and that no file
// exceeds the size limit, in that order.
func (v Validator) Validate(files model.FileSet) ValidationResult {
	limit := v.MaxFileSize
	if limit <= 0 {
		limit = MaxFileSize
	}

	var missing []string
	for _, ext := range RequiredExtensions {
		if !files.Has(ext) {
			missing = append(missing, ext)
		}
	}
	if len(missing) > 0 {
		dotted := make([]string, len(missing))
		for i, ext := range missing {
			dotted[i] = "." + ext
		}
		return ValidationResult{
			Valid:        false,
			Message:      "missing required files: " + strings.Join(dotted, ", "),
			MissingFiles: missing,
		}
	}

	exts := files.Extensions()
	var oversized []string
	for _, ext := range exts {
		f := files[ext]
		if f.Size() <= limit {
			continue
		}
		name := f.Name
		if name == "" {
			name = "." + ext
		}
		oversized = append(oversized, name)
	}
	if len(oversized) > 0 {
		return ValidationResult{
			Valid:          false,
			Message:        fmt.Sprintf("files too large: %s (max %s)", strings.Join(oversized, ", "), formatSize(limit)),
			OversizedFiles: oversized,
		}
	}

	return ValidationResult{
		Valid:           true,
		Message:         "shapefile set is valid",
		Files:           files,
		FoundExtensions: exts,
	}
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
