package cmd

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/internal/shared"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [project ID or slug]",
	Short: "Open a project's registry page in your browser",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := fmt.Sprintf("https://modrinth.com/project/%s", args[0])
		fmt.Printf("Opening %s...\n", url)
		if err := open.Start(url); err != nil {
			shared.Exitln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
