package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/manifest"
)

// providersCmd lists the infrastructure providers with a cloud properties mapping.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported infrastructure providers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range manifest.SupportedProviders() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
