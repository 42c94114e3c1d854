package main

import "github.com/spf13/cobra"

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Geodesic calculations",
	Long:  "Distance, area, buffer, clustering and containment on WGS84 coordinates.",
}

func init() { rootCmd.AddCommand(geoCmd) }
