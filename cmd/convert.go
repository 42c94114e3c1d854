package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geokit/internal/datum"
	"github.com/sells-group/geokit/internal/export"
	"github.com/sells-group/geokit/internal/shapefile"
)

// formatShapefile writes through the shapefile writer instead of export.
const formatShapefile = "shp"

type convertOptions struct {
	Format string
	OutDir string
	Minify bool
	Datum  string
}

// convertResult is reported once per input.
type convertResult struct {
	Input    string `json:"input" yaml:"input"`
	Output   string `json:"output" yaml:"output"`
	Features int    `json:"features" yaml:"features"`
	CRS      string `json:"crs" yaml:"crs"`
}

var convertCmd = &cobra.Command{
	Use:   "convert <input...>",
	Short: "Convert shapefile or GeoJSON datasets to another format",
	Long:  "Parses each input (.shp with siblings, .zip upload or .geojson) and writes it as GeoJSON, CSV, KML or Shapefile.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Export.Format
		}
		outDir, _ := cmd.Flags().GetString("out")
		minify, _ := cmd.Flags().GetBool("minify")
		if !cmd.Flags().Changed("minify") {
			minify = cfg.Export.Minify
		}
		direction, _ := cmd.Flags().GetString("datum")

		opts := convertOptions{Format: format, OutDir: outDir, Minify: minify, Datum: direction}
		results, err := runConvert(ctx, args, opts, cfg.Parse.Concurrency)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), outputFormat, results)
	},
}

func init() {
	convertCmd.Flags().String("format", "", "output format: geojson, csv, kml or shp (default from config)")
	convertCmd.Flags().String("out", ".", "output directory")
	convertCmd.Flags().Bool("minify", false, "minify GeoJSON and KML output")
	convertCmd.Flags().String("datum", datum.DirectionNone, "datum conversion: none, local or global")
	rootCmd.AddCommand(convertCmd)
}

// runConvert converts inputs concurrently and returns results in input order.
// The first failure cancels the remaining conversions.
func runConvert(ctx context.Context, inputs []string, opts convertOptions, concurrency int) ([]convertResult, error) {
	if err := checkConvertFormat(opts.Format); err != nil {
		return nil, err
	}
	if _, err := datum.ByName(datum.Identity{}, opts.Datum); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "convert: create %s", opts.OutDir)
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	runID := uuid.New().String()
	log := zap.L().With(zap.String("component", "convert"), zap.String("run_id", runID))
	log.Info("starting conversion",
		zap.Int("inputs", len(inputs)),
		zap.String("format", opts.Format),
		zap.Int("concurrency", concurrency),
	)

	var converted, features atomic.Int64
	results := make([]convertResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := convertDataset(gctx, in, opts)
			if err != nil {
				log.Error("conversion failed", zap.String("input", in), zap.Error(err))
				return err
			}
			results[i] = res
			converted.Add(1)
			features.Add(int64(res.Features))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("conversion complete",
		zap.Int64("converted", converted.Load()),
		zap.Int64("features", features.Load()),
	)
	return results, nil
}

// convertDataset loads one input, applies the datum direction and writes
// the output into OutDir under the input's stem.
func convertDataset(ctx context.Context, input string, opts convertOptions) (convertResult, error) {
	fc, err := loadDataset(ctx, input)
	if err != nil {
		return convertResult{}, err
	}
	fn, err := datum.ByName(datum.Identity{}, opts.Datum)
	if err != nil {
		return convertResult{}, err
	}
	fc = datum.Apply(fc, fn)

	if err := ctx.Err(); err != nil {
		return convertResult{}, eris.Wrap(err, "convert: canceled")
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	stem := filepath.Join(opts.OutDir, datasetStem(input))
	res := convertResult{Input: input, Features: fc.Len(), CRS: fc.CRS}

	if format == formatShapefile {
		if err := shapefile.Write(stem, fc); err != nil {
			return convertResult{}, err
		}
		res.Output = stem + ".shp"
		return res, nil
	}

	out, err := export.Export(fc, format)
	if err != nil {
		return convertResult{}, err
	}
	if opts.Minify {
		out, err = export.Minify(format, out)
		if err != nil {
			return convertResult{}, err
		}
	}

	res.Output = stem + export.Extension(format)
	if err := os.WriteFile(res.Output, []byte(out), 0o644); err != nil {
		return convertResult{}, eris.Wrapf(err, "convert: write %s", res.Output)
	}
	return res, nil
}

func checkConvertFormat(format string) error {
	if strings.EqualFold(strings.TrimSpace(format), formatShapefile) {
		return nil
	}
	_, err := export.ParseFormat(format)
	return err
}
