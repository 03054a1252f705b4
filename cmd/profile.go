package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crafthub/depcraft/internal/shared"
	"github.com/crafthub/depcraft/profile"
)

var profileGameVersion string
var profileLoader string
var profileLoaderVersion string
var profileResourceDir string
var profileMode string

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage installation profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an installation profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(false)
		defer engine.close()

		if profileGameVersion == "" || profileLoader == "" || profileResourceDir == "" {
			shared.Exitln("--game-version, --loader and --dir are required")
		}

		engine.store.Set(args[0], profile.Profile{
			GameVersion:   profileGameVersion,
			Loader:        profileLoader,
			LoaderVersion: profileLoaderVersion,
			ResourceDir:   profileResourceDir,
			Mode:          profileMode,
		})
		if err := engine.store.Save(); err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("Profile %s saved.\n", args[0])
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installation profiles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(false)
		defer engine.close()

		names := engine.store.Names()
		if len(names) == 0 {
			fmt.Println("No profiles yet; add one with 'depcraft profile add'.")
			return
		}
		for _, name := range names {
			p, _ := engine.store.Get(name)
			fmt.Printf("%s: %s / %s (%s)\n", name, p.GameVersion, p.Loader, p.ResourceDir)
		}
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Short:   "Remove an installation profile",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := newEngine(false)
		defer engine.close()

		if !engine.store.Remove(args[0]) {
			shared.Exitf("No profile named %q\n", args[0])
		}
		if err := engine.store.Save(); err != nil {
			shared.Exitln(err)
		}
		fmt.Printf("Profile %s removed.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileRemoveCmd)

	profileAddCmd.Flags().StringVar(&profileGameVersion, "game-version", "", "Game version of the installation")
	profileAddCmd.Flags().StringVar(&profileLoader, "loader", "", "Loader name (vanilla, fabric, forge, quilt, neoforge)")
	profileAddCmd.Flags().StringVar(&profileLoaderVersion, "loader-version", "", "Loader version")
	profileAddCmd.Flags().StringVar(&profileResourceDir, "dir", "", "Resource directory root of the installation")
	profileAddCmd.Flags().StringVar(&profileMode, "mode", "local", "Installation mode: local or remote")
}
