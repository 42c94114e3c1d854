package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

type areaResult struct {
	Vertices int     `json:"vertices" yaml:"vertices"`
	AreaKM2  float64 `json:"area_km2" yaml:"area_km2"`
}

var geoAreaCmd = &cobra.Command{
	Use:   "area <lng,lat;lng,lat;...>",
	Short: "Approximate spherical area of a ring",
	Long:  "Computes the area in square kilometers of the ring formed by the given vertices. The ring is closed implicitly.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parsePoints(args[0])
		if err != nil {
			return err
		}
		if len(pts) < 3 {
			return eris.Errorf("geo area: need at least 3 vertices, got %d", len(pts))
		}

		return printResult(cmd.OutOrStdout(), outputFormat, areaResult{
			Vertices: len(pts),
			AreaKM2:  geodesy.PolygonArea(model.Ring(pts)),
		})
	},
}

func init() { geoCmd.AddCommand(geoAreaCmd) }
