package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

var geoBufferCmd = &cobra.Command{
	Use:   "buffer <lng,lat>",
	Short: "Circular buffer polygon around a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		center, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		radius, _ := cmd.Flags().GetFloat64("radius")
		if radius <= 0 {
			return eris.Errorf("geo buffer: radius must be > 0, got %g", radius)
		}
		segments, _ := cmd.Flags().GetInt("segments")
		if !cmd.Flags().Changed("segments") {
			segments = cfg.Geodesy.BufferSegments
		}

		ring := geodesy.CreateBuffer(center, radius, segments)

		asWKT, _ := cmd.Flags().GetBool("wkt")
		if asWKT {
			s, err := bufferWKT(ring)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		}
		return printResult(cmd.OutOrStdout(), outputFormat, ring)
	},
}

func init() {
	geoBufferCmd.Flags().Float64("radius", 0, "buffer radius in meters")
	geoBufferCmd.Flags().Int("segments", geodesy.DefaultSegments, "number of ring segments (default from config)")
	geoBufferCmd.Flags().Bool("wkt", false, "print the buffer as WKT")
	geoCmd.AddCommand(geoBufferCmd)
}

func bufferWKT(ring model.Ring) (string, error) {
	s, err := wkt.Marshal(model.NewPolygon(ring))
	if err != nil {
		return "", eris.Wrap(err, "geo buffer: encode wkt")
	}
	return s, nil
}
