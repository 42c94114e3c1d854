package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

type datasetStats struct {
	model.Summary `yaml:",inline"`
	CRS           string  `json:"crs" yaml:"crs"`
	AreaKM2       float64 `json:"area_km2" yaml:"area_km2"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <input>",
	Short: "Summarize a dataset",
	Long:  "Counts features per geometry type and reports bounds, CRS and total polygon area in square kilometers.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fc, err := loadDataset(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), outputFormat, summarizeDataset(fc))
	},
}

func init() { rootCmd.AddCommand(statsCmd) }

func summarizeDataset(fc *model.FeatureCollection) datasetStats {
	s := datasetStats{Summary: model.Summarize(fc), CRS: fc.CRS}
	for _, f := range fc.Features {
		s.AreaKM2 += geodesy.GeometryArea(f.Geometry)
	}
	return s
}
