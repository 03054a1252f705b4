package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/dixonwille/wmenu.v4"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/internal/shared"
)

var installTypeFlag string
var autoFlag bool
var mainOnlyFlag bool
var chooseVersionFlag bool

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:     "install [project ID or slug]",
	Short:   "Install a project and its missing dependencies into the selected profile",
	Aliases: []string{"add", "get"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(true)
		defer engine.close()

		ctx := context.Background()
		packageType := packageTypeFlag(installTypeFlag)
		engine.rescan(ctx, packageType)

		projectID := args[0]

		if autoFlag {
			if err := engine.orch.AutoInstall(ctx, projectID, engine.installation); err != nil {
				reportInstallFailure(err)
			}
			fmt.Printf("Project %s installed successfully!\n", projectID)
			return
		}

		resolution, err := engine.orch.Resolve(ctx, projectID, engine.installation)
		if err != nil {
			shared.Exitf("Failed to resolve %s: %s\n", projectID, err)
		}

		if chooseVersionFlag && len(resolution.RootReleases) > 1 {
			if err := chooseRootRelease(resolution); err != nil {
				engine.orch.Cancel()
				shared.Exitln(err)
			}
		}

		if mainOnlyFlag {
			if err := engine.orch.DownloadMainOnly(ctx, resolution, engine.installation); err != nil {
				reportInstallFailure(err)
			}
			fmt.Printf("Project %s installed (dependencies skipped).\n", resolution.Root.Title)
			return
		}

		if len(resolution.Missing) > 0 {
			fmt.Println("Missing dependencies:")
			for _, dep := range resolution.Missing {
				if len(dep.Releases) == 0 {
					fmt.Printf("  %s (no compatible version available)\n", dep.Detail.Title)
					continue
				}
				fmt.Printf("  %s (%s)\n", dep.Detail.Title, dep.Releases[0].VersionNumber)
			}

			if !shared.PromptYesNo("Download all and continue? [Y/n]: ") {
				if shared.PromptYesNo("Download the main project only? [Y/n]: ") {
					if err := engine.orch.DownloadMainOnly(ctx, resolution, engine.installation); err != nil {
						reportInstallFailure(err)
					}
					fmt.Printf("Project %s installed (dependencies skipped).\n", resolution.Root.Title)
					return
				}
				engine.orch.Cancel()
				fmt.Println("Install cancelled.")
				return
			}
		}

		err = engine.orch.DownloadAll(ctx, resolution, engine.installation)
		for err != nil {
			var batchErr *core.BatchError
			if !errors.As(err, &batchErr) {
				shared.Exitf("Install failed: %s\n", err)
			}
			fmt.Printf("%d download(s) failed:\n", len(batchErr.Failures))
			for id, itemErr := range batchErr.Failures {
				fmt.Printf("  %s: %s\n", id, itemErr)
			}
			if !shared.PromptYesNo("Retry failed downloads? [Y/n]: ") {
				shared.Exitln("Install incomplete; already-downloaded dependencies were kept.")
			}
			err = retryFailed(ctx, engine, resolution, batchErr)
		}

		fmt.Printf("Project %s installed successfully!\n", resolution.Root.Title)
	},
}

// retryFailed retries each failed item individually, then finishes the batch
// (which skips everything already succeeded and places the root).
func retryFailed(ctx context.Context, engine *engine, resolution *core.DependencyResolution, batchErr *core.BatchError) error {
	for id := range batchErr.Failures {
		if id == resolution.Root.ID {
			continue
		}
		if resolution.State(id) != core.DownloadFailed {
			continue
		}
		if err := engine.orch.RetryDependency(ctx, resolution, engine.installation, id); err != nil {
			engine.log.Warn("retry failed", zap.String("project", id), zap.Error(err))
		}
	}
	return engine.orch.DownloadAll(ctx, resolution, engine.installation)
}

func chooseRootRelease(resolution *core.DependencyResolution) error {
	menu := wmenu.NewMenu("Choose a version:")
	menu.Option("Cancel", nil, false, nil)
	for i := range resolution.RootReleases {
		release := &resolution.RootReleases[i]
		menu.Option(release.Name+" ("+release.VersionNumber+")", release, i == 0, nil)
	}
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return errors.New("version selection cancelled")
		}
		release, ok := menuRes[0].Value.(*core.VersionRelease)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		resolution.SelectRoot(release)
		return nil
	})
	return menu.Run()
}

func reportInstallFailure(err error) {
	var batchErr *core.BatchError
	if errors.As(err, &batchErr) {
		fmt.Printf("%d download(s) failed:\n", len(batchErr.Failures))
		for id, itemErr := range batchErr.Failures {
			fmt.Printf("  %s: %s\n", id, itemErr)
		}
		shared.Exitln("Install incomplete; already-downloaded dependencies were kept. Re-run to retry.")
	}
	shared.Exitf("Install failed: %s\n", err)
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installTypeFlag, "type", "mod", "Package type: mod, datapack, shader, resourcepack")
	installCmd.Flags().BoolVar(&autoFlag, "auto", false, "Download all dependencies without confirmation")
	installCmd.Flags().BoolVar(&mainOnlyFlag, "main-only", false, "Skip all dependencies and install the main project only")
	installCmd.Flags().BoolVar(&chooseVersionFlag, "choose-version", false, "Pick the version to install instead of using the latest")
}
