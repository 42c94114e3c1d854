package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

type containsResult struct {
	Point    model.Point `json:"point" yaml:"point"`
	Matches  []int       `json:"matches" yaml:"matches"`
	Features int         `json:"features" yaml:"features"`
}

var geoContainsCmd = &cobra.Command{
	Use:   "contains <input> <lng,lat>",
	Short: "List the polygon features containing a point",
	Long:  "Reports the zero-based indexes of polygon and multipolygon features whose exterior contains the point and whose holes do not.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		fc, err := loadDataset(ctx, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), outputFormat, containing(fc, p))
	},
}

func init() { geoCmd.AddCommand(geoContainsCmd) }

func containing(fc *model.FeatureCollection, p model.Point) containsResult {
	res := containsResult{Point: p, Matches: []int{}, Features: fc.Len()}
	for i, f := range fc.Features {
		if geodesy.Contains(f.Geometry, p) {
			res.Matches = append(res.Matches, i)
		}
	}
	return res
}
