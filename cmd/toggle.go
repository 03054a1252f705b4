package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/internal/shared"
)

var toggleTypeFlag string

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:     "toggle [file name]",
	Short:   "Enable or disable an installed resource by renaming it",
	Aliases: []string{"disable", "enable"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(true)
		defer engine.close()

		packageType := packageTypeFlag(toggleTypeFlag)
		engine.rescan(context.Background(), packageType)

		newName, err := engine.orch.Toggle(engine.installation, packageType, args[0])
		if err != nil {
			shared.Exitf("Failed to toggle %s: %s\n", args[0], err)
		}

		if core.IsDisabled(newName) {
			fmt.Printf("%s is now disabled.\n", core.EnabledName(newName))
		} else {
			fmt.Printf("%s is now enabled.\n", newName)
		}
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)

	toggleCmd.Flags().StringVar(&toggleTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
}
