// Package cmd provides the CLI commands for boshcf.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/ui"
)

const version = "0.1.0"

var (
	systemFlag  string
	verboseFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boshcf",
	Short: "Render BOSH deployment manifests for Cloud Foundry",
	Long: `boshcf - BOSH manifests for Cloud Foundry

Renders the core deployment manifest of a Cloud Foundry system from its
system.yml. The core deployment co-locates every Cloud Foundry service on a
single "core" VM. DEA workers are added on the core VM or on their own pool.

SYSTEM
  A system directory holds system.yml (or system.yml.tmpl) and receives
  rendered manifests under deployments/. It is found from --system, the
  target_system in ~/.boshcf/config.yml, or by searching upward from the
  working directory.

COMMANDS
  render                Render deployments/<system>-core.yml
    --dry-run, -n       Print the manifest instead of writing it
    --secrets <file>    Overlay a SOPS-encrypted secrets file
    --director-uuid <u> Override the director UUID from ~/.bosh_config
  validate              Check system.yml without rendering
  providers             List supported infrastructure providers
  history               List manifests kept before render replaced them
  rollback [snapshot]   Restore a previous manifest`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ui.DisableColorUnlessTerminal(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&systemFlag, "system", "s", "", "System directory (default: search upward from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Trace manifest composition on stderr")

	rootCmd.SetVersionTemplate("boshcf version {{.Version}}\n")
}
