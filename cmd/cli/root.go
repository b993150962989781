// Package cli implements the kyc-admin command line tool for operational
// tasks that bypass the HTTP API: bootstrapping accounts and inspecting the
// role policy table.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kyc-admin",
	Short: "Administer the KYC case management service",
	Long: `kyc-admin performs administrative tasks against the KYC service
database directly, such as creating the first admin account and
inspecting role permissions.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "directory containing config.yaml")
}
