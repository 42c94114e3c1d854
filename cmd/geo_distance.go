package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/geokit/internal/geodesy"
	"github.com/sells-group/geokit/internal/model"
)

type distanceResult struct {
	From     model.Point  `json:"from" yaml:"from"`
	To       model.Point  `json:"to" yaml:"to"`
	Distance float64      `json:"distance" yaml:"distance"`
	Unit     geodesy.Unit `json:"unit" yaml:"unit"`
}

var geoDistanceCmd = &cobra.Command{
	Use:   "distance <lng,lat> <lng,lat>",
	Short: "Great-circle distance between two points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		to, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		unitFlag, _ := cmd.Flags().GetString("unit")
		unit, err := geodesy.ParseUnit(unitFlag)
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), outputFormat, distanceResult{
			From:     from,
			To:       to,
			Distance: geodesy.Distance(from, to, unit),
			Unit:     unit,
		})
	},
}

func init() {
	geoDistanceCmd.Flags().String("unit", string(geodesy.Kilometers), "distance unit: km or m")
	geoCmd.AddCommand(geoDistanceCmd)
}
