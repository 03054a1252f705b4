package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/core"
)

var listTypeFlag string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the resources installed in the selected profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(true)
		defer engine.close()

		ctx := context.Background()
		packageType := packageTypeFlag(listTypeFlag)
		entries, err := engine.scanner.Scan(ctx, engine.installation.ResourceDirFor(packageType), packageType)
		if err != nil {
			fmt.Println(err)
			return
		}

		sort.Slice(entries, func(i, j int) bool {
			return core.EnabledName(entries[i].FileName) < core.EnabledName(entries[j].FileName)
		})

		for _, entry := range entries {
			status := ""
			if entry.Disabled {
				status = " (disabled)"
			}
			if entry.ProjectID != "" {
				fmt.Printf("%s%s [%s]\n", entry.FileName, status, entry.ProjectID)
			} else {
				fmt.Printf("%s%s\n", entry.FileName, status)
			}
		}
		fmt.Printf("%d %s file(s) in %s\n", len(entries), packageType, engine.installation.Name)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
}
