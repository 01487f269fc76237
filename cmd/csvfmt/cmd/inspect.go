package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/csvtools/dialectcsv"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Parse stdin under --dialect and dump header/records for debugging",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			_ = cmd.Help()
			return fmt.Errorf("too many arguments")
		}

		f, err := resolveFormat()
		if err != nil {
			return err
		}

		parser, err := dialectcsv.NewParser(os.Stdin, f, dialectcsv.WithLogger(log))
		if err != nil {
			return err
		}
		defer parser.Close()

		if names := parser.HeaderNames(); len(names) > 0 {
			fmt.Println("header:")
			repr.Println(names)
		}
		if comment, ok := parser.HeaderComment(); ok {
			fmt.Println("header comment:", comment)
		}

		for {
			rec, ok, err := parser.NextRecord()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			repr.Println(rec.Values())
		}

		if trailer, ok := parser.TrailerComment(); ok {
			fmt.Println("trailer comment:", trailer)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
