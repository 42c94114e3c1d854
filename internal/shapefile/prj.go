package shapefile

import (
	"regexp"
	"strings"

	"github.com/sells-group/geokit/internal/model"
)

// topLevelAuthority matches the EPSG authority closing the outermost WKT node.
var topLevelAuthority = regexp.MustCompile(`AUTHORITY\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]\s*\]\s*$`)

// DetectCRS maps .prj WKT to a CRS identifier. The second return value is
// false when the text is empty or not recognised, in which case the identifier
// is model.DefaultCRS.
func DetectCRS(wkt string) (string, bool) {
	wkt = strings.TrimSpace(wkt)
	if wkt == "" {
		return model.DefaultCRS, false
	}

	if m := topLevelAuthority.FindStringSubmatch(wkt); m != nil {
		return "EPSG:" + m[1], true
	}

	upper := strings.ToUpper(wkt)
	switch {
	case strings.Contains(upper, "WEB_MERCATOR"),
		strings.Contains(upper, "PSEUDO-MERCATOR"),
		strings.Contains(upper, "POPULAR VISUALISATION"):
		return "EPSG:3857", true
	case strings.HasPrefix(upper, "PROJCS"):
		// Other projected systems are not identified.
		return model.DefaultCRS, false
	case strings.Contains(upper, "CGCS2000"),
		strings.Contains(upper, "CHINA_GEODETIC_COORDINATE_SYSTEM_2000"),
		strings.Contains(upper, "CHINA GEODETIC COORDINATE SYSTEM 2000"):
		return "EPSG:4490", true
	case strings.Contains(upper, "WGS_1984"),
		strings.Contains(upper, "WGS 84"),
		strings.Contains(upper, "WGS84"):
		return "EPSG:4326", true
	default:
		return model.DefaultCRS, false
	}
}

// wgs84WKT is the ESRI projection text written alongside exported shapefiles.
const wgs84WKT = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`
