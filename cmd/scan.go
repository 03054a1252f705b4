package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var scanTypeFlag string

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:     "scan",
	Short:   "Rescan the selected profile's resource directory",
	Aliases: []string{"refresh"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(true)
		defer engine.close()

		packageType := packageTypeFlag(scanTypeFlag)
		engine.rescan(context.Background(), packageType)

		disabled := 0
		for _, entry := range engine.installed.Entries() {
			if entry.Disabled {
				disabled++
			}
		}
		fmt.Printf("Indexed %d file(s) (%d disabled) in %s\n",
			engine.installed.Len(), disabled, engine.installation.Name)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
}
