package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/internal/shared"
	"github.com/crafthub/depcraft/orchestrate"
)

var updateTypeFlag string
var updateAllFlag bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update [file name]",
	Short:   "Update an installed resource (or all of them) to the latest compatible release",
	Aliases: []string{"upgrade"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && !updateAllFlag {
			shared.Exitln("Specify a file name or pass --all")
		}

		engine := newEngine(true)
		defer engine.close()

		ctx := context.Background()
		packageType := packageTypeFlag(updateTypeFlag)
		engine.rescan(ctx, packageType)

		entries := engine.installed.Entries()
		sort.Slice(entries, func(i, j int) bool { return entries[i].FileName < entries[j].FileName })

		if len(args) == 1 {
			entry, ok := engine.installed.FindByFileName(args[0])
			if !ok {
				shared.Exitf("No installed resource named %s; run 'depcraft scan' to refresh\n", args[0])
			}
			entries = []core.InstalledEntry{entry}
		}

		var updates []struct {
			entry core.InstalledEntry
			check orchestrate.UpdateCheck
		}
		for _, entry := range entries {
			if entry.ProjectID == "" {
				engine.log.Sugar().Debugf("skipping %s: no recorded project identity", entry.FileName)
				continue
			}
			check, err := engine.orch.CheckUpdate(ctx, entry, packageType, engine.installation)
			if err != nil {
				fmt.Printf("Failed to check %s: %s\n", entry.FileName, err)
				continue
			}
			if check.UpdateAvailable {
				updates = append(updates, struct {
					entry core.InstalledEntry
					check orchestrate.UpdateCheck
				}{entry, check})
			}
		}

		if len(updates) == 0 {
			fmt.Println("Everything is up to date.")
			return
		}

		fmt.Println("Updates available:")
		for _, u := range updates {
			fmt.Printf("  %s\n", u.check.UpdateString)
		}
		if !shared.PromptYesNo("Apply these updates? [Y/n]: ") {
			fmt.Println("Cancelled.")
			return
		}

		failed := 0
		for _, u := range updates {
			if err := engine.orch.PerformUpdate(ctx, u.entry, packageType, engine.installation, u.check); err != nil {
				fmt.Printf("Failed to update %s: %s\n", u.entry.FileName, err)
				failed++
			}
		}
		if failed > 0 {
			shared.Exitf("%d update(s) failed; successful updates were kept.\n", failed)
		}
		fmt.Printf("%d resource(s) updated.\n", len(updates))
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
	updateCmd.Flags().BoolVarP(&updateAllFlag, "all", "a", false, "Update all installed resources of the given type")
}
