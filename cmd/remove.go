package cmd

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/internal/shared"
)

var removeTypeFlag string

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove [file name]",
	Short:   "Remove an installed resource from the selected profile",
	Aliases: []string{"delete", "uninstall", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(true)
		defer engine.close()

		ctx := context.Background()
		packageType := packageTypeFlag(removeTypeFlag)
		engine.rescan(ctx, packageType)

		target := args[0]
		entry, ok := engine.installed.FindByFileName(target)
		if !ok {
			// Fall back to a fuzzy match so the user doesn't have to type the
			// exact jar name.
			entries := engine.installed.Entries()
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.FileName
			}
			matches := fuzzy.Find(target, names)
			if len(matches) == 0 {
				shared.Exitf("No installed resource matches %s\n", target)
			}
			entry = entries[matches[0].Index]
			if !shared.PromptYesNo(fmt.Sprintf("Remove %s? [Y/n]: ", entry.FileName)) {
				fmt.Println("Cancelled.")
				return
			}
		}

		if err := engine.orch.Delete(engine.installation, packageType, entry.FileName); err != nil {
			shared.Exitf("Failed to remove %s: %s\n", entry.FileName, err)
		}
		fmt.Printf("%s removed successfully!\n", core.EnabledName(entry.FileName))
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVar(&removeTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
}
