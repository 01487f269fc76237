package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/csvtools/dialectcsv"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List predefined dialects, or print one in detail with --describe",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			_ = cmd.Help()
			return fmt.Errorf("too many arguments")
		}

		describe, _ := cmd.Flags().GetString("describe")
		if describe != "" {
			f, ok := dialectcsv.Dialects[describe]
			if !ok {
				return fmt.Errorf("unknown dialect %q", describe)
			}
			repr.Println(f)
			return nil
		}

		for _, name := range dialectcsv.DialectNames() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	dialectsCmd.Flags().String("describe", "", "print the full configuration of one named dialect")
	rootCmd.AddCommand(dialectsCmd)
}
