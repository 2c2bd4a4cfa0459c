// Command healthctl is the operator CLI: it seeds demo data into MongoDB and
// scores response sets offline.
package main

import (
	"fmt"
	"os"
	"teamhealth/internal/config"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "healthctl",
	Short:         "Team health survey tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (or set TEAMHEALTH_CONFIG)")
	rootCmd.PersistentPreRunE = applyConfigFlag
	rootCmd.AddCommand(seedCmd, scoreCmd)
}

// applyConfigFlag hands --config to config.Load through its env variable
func applyConfigFlag(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		return os.Setenv(config.ConfigPathEnv, configPath)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
