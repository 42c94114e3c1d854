package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

var geoClusterCmd = &cobra.Command{
	Use:   "cluster [input]",
	Short: "Group points within a radius",
	Long:  "Greedily clusters the points given with --points, or every vertex of a dataset, within --radius meters of each cluster seed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		radius, _ := cmd.Flags().GetFloat64("radius")
		if !cmd.Flags().Changed("radius") {
			radius = cfg.Geodesy.ClusterRadiusM
		}
		raw, _ := cmd.Flags().GetString("points")

		var pts []model.Point
		switch {
		case raw != "" && len(args) > 0:
			return eris.New("geo cluster: pass --points or an input, not both")
		case raw != "":
			p, err := parsePoints(raw)
			if err != nil {
				return err
			}
			pts = p
		case len(args) == 1:
			fc, err := loadDataset(ctx, args[0])
			if err != nil {
				return err
			}
			pts = collectionPoints(fc)
		default:
			return eris.New("geo cluster: pass --points or an input")
		}

		clusters := geodesy.ClusterPoints(pts, radius)
		zap.L().Debug("clustered points",
			zap.String("component", "geo"),
			zap.Int("points", len(pts)),
			zap.Int("clusters", len(clusters)),
			zap.Float64("radius_m", radius),
		)
		return printResult(cmd.OutOrStdout(), outputFormat, clusters)
	},
}

func init() {
	geoClusterCmd.Flags().String("points", "", "points as lng,lat;lng,lat;...")
	geoClusterCmd.Flags().Float64("radius", 100, "cluster radius in meters (default from config)")
	geoCmd.AddCommand(geoClusterCmd)
}
