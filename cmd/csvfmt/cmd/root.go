// Package cmd wires the csvfmt cobra commands, grounded on the teacher's
// cli/cmd package (root.go's persistent flags + per-subcommand RunE files,
// logrus field logger, gofrs/uuid run correlation).
package cmd

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csvtools/dialectcsv"
	"github.com/csvtools/dialectcsv/config"
)

var (
	rootCmd = &cobra.Command{
		Use:          "csvfmt",
		Short:        "csvfmt",
		SilenceUsage: true,
		Long:         `Reads and writes CSV-family streams under a configurable dialect.`,
	}

	dialectName string
	dialectFile string
	logLevel    string

	baseLogger = logrus.New()
	log        logrus.FieldLogger = baseLogger
)

// Execute runs the root command.
func Execute() error {
	runID := "unknown"
	if id, err := uuid.NewV4(); err == nil {
		runID = id.String()
	}

	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "DEFAULT", "predefined dialect name (see 'csvfmt dialects')")
	rootCmd.PersistentFlags().StringVar(&dialectFile, "dialect-file", "", "path to a YAML file defining custom dialects, looked up by --dialect")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	cobra.OnInitialize(func() {
		if lvl, err := logrus.ParseLevel(logLevel); err == nil {
			baseLogger.SetLevel(lvl)
		}
		log = baseLogger.WithField("run_id", runID)
	})

	return rootCmd.Execute()
}

// resolveFormat resolves the --dialect/--dialect-file flags into a Format,
// checking the custom dialect file first so a file entry can shadow a
// predefined name.
func resolveFormat() (dialectcsv.Format, error) {
	if dialectFile != "" {
		df, err := config.Load(dialectFile)
		if err != nil {
			return dialectcsv.Format{}, fmt.Errorf("loading dialect file: %w", err)
		}
		if spec, ok := df.Dialects[dialectName]; ok {
			return spec.Resolve()
		}
	}
	f, ok := dialectcsv.Dialects[dialectName]
	if !ok {
		return dialectcsv.Format{}, fmt.Errorf("unknown dialect %q (see 'csvfmt dialects')", dialectName)
	}
	return f, nil
}
