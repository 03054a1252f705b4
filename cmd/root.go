package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crafthub/depcraft/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "depcraft",
	Short: "A dependency-aware installer for game content packages",
	Long: `depcraft resolves, downloads and manages mods, datapacks, shaders and
resource packs for a game installation, including their transitive
dependencies.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.Version = config.Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("profile", "", "The installation profile to operate on")
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Accept all prompts (non-interactive mode)")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("yes"))
}

func initConfig() {
	config.SetDefaults()
	viper.SetEnvPrefix("depcraft")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
