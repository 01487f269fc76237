package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csvtools/dialectcsv"
)

var toDialectName string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-emit stdin (parsed under --dialect) as stdout under --to-dialect",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			_ = cmd.Help()
			return fmt.Errorf("too many arguments")
		}

		from, err := resolveFormat()
		if err != nil {
			return err
		}
		to := from
		if toDialectName != "" {
			var ok bool
			to, ok = dialectcsv.Dialects[toDialectName]
			if !ok {
				return fmt.Errorf("unknown --to-dialect %q", toDialectName)
			}
		}

		start := time.Now()
		runLog := log.WithField("from", dialectName).WithField("to", toDialectName)
		runLog.Debug("converting stdin")

		parser, err := dialectcsv.NewParser(os.Stdin, from, dialectcsv.WithLogger(log))
		if err != nil {
			runLog.WithError(err).Warn("conversion failed")
			return err
		}
		defer parser.Close()

		printer, err := dialectcsv.NewPrinter(os.Stdout, to, dialectcsv.WithPrinterLogger(log))
		if err != nil {
			runLog.WithError(err).Warn("conversion failed")
			return err
		}
		defer printer.Close()

		for {
			rec, ok, err := parser.NextRecord()
			if err != nil {
				runLog.WithError(err).WithField("records", printer.RecordCount()).Warn("conversion failed")
				return err
			}
			if !ok {
				break
			}
			values := make([]dialectcsv.FieldValue, rec.Len())
			for i := 0; i < rec.Len(); i++ {
				v, isNull, _ := rec.Get(i)
				if isNull {
					values[i] = dialectcsv.Null()
				} else {
					values[i] = dialectcsv.Text(v)
				}
			}
			if err := printer.PrintRecord(values...); err != nil {
				runLog.WithError(err).WithField("records", printer.RecordCount()).Warn("conversion failed")
				return err
			}
		}

		runLog.WithFields(logrus.Fields{
			"records": printer.RecordCount(),
			"elapsed": time.Since(start).String(),
		}).Info("conversion complete")
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&toDialectName, "to-dialect", "", "output dialect name (defaults to --dialect)")
	rootCmd.AddCommand(convertCmd)
}
