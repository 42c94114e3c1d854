package shapefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCRS(t *testing.T) {
	tests := []struct {
		name   string
		wkt    string
		want   string
		wantOK bool
	}{
		{"empty", "", "EPSG:4326", false},
		{"esri wgs84", wgs84WKT, "EPSG:4326", true},
		{
			"ogc wgs84 with authority",
			`GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433],AUTHORITY["EPSG","4326"]]`,
			"EPSG:4326", true,
		},
		{
			"cgcs2000",
			`GEOGCS["GCS_China_Geodetic_Coordinate_System_2000",DATUM["D_China_2000",SPHEROID["CGCS2000",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`,
			"EPSG:4490", true,
		},
		{
			"web mercator",
			`PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Mercator_Auxiliary_Sphere"],UNIT["Meter",1.0]]`,
			"EPSG:3857", true,
		},
		{
			"projected with authority",
			`PROJCS["NAD83 / UTM zone 17N",GEOGCS["NAD83",AUTHORITY["EPSG","4269"]],PROJECTION["Transverse_Mercator"],AUTHORITY["EPSG","26917"]]`,
			"EPSG:26917", true,
		},
		{
			"projected without authority",
			`PROJCS["WGS_1984_UTM_Zone_48N",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]]],PROJECTION["Transverse_Mercator"]]`,
			"EPSG:4326", false,
		},
		{"garbage", "not a projection", "EPSG:4326", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := DetectCRS(tt.wkt)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
