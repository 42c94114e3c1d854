package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geokit/internal/shapefile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <files...|upload.zip>",
	Short: "Check a shapefile set for required members and size limits",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		files, err := readFileSet(ctx, args)
		if err != nil {
			return err
		}

		res := shapefile.Validator{MaxFileSize: maxFileSize()}.Validate(files)
		if err := printResult(cmd.OutOrStdout(), outputFormat, res); err != nil {
			return err
		}

		zap.L().Debug("validated file set",
			zap.Bool("valid", res.Valid),
			zap.Strings("extensions", files.Extensions()),
		)
		if !res.Valid {
			return eris.New("validate: " + res.Message)
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(validateCmd) }
