// Package cmd provides the command-line interface for elkey.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/elkey/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elkey",
	Short: "elkey simulates an iambic Morse keyer.",
	Long: `elkey simulates an iambic Morse keyer. It can replay scripted ` +
		`paddle activity in virtual time, run the keyer against the wall ` +
		`clock with a web monitor, and convert speed settings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringSlice("env", nil,
		"dotenv files with ELKEY_* overrides")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		return 1
	}

	return 0
}

// loadConfig builds the configuration from the default, the YAML file, and
// the environment, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFiles, _ := cmd.Flags().GetStringSlice("env")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	cfg, err = config.FromEnv(cfg, envFiles...)
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", describeSource(path), err)
	}

	return cfg, nil
}

func describeSource(path string) string {
	if path == "" {
		return "default configuration"
	}

	return path
}
