package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/config"
	"github.com/cameronsjo/boshcf/internal/dea"
	"github.com/cameronsjo/boshcf/internal/manifest"
	"github.com/cameronsjo/boshcf/internal/ui"
)

var (
	renderDryRun       bool
	renderSecrets      string
	renderDirectorUUID string
)

// renderCmd renders the core deployment manifest.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the core deployment manifest",
	Long: `Render the core deployment manifest of a system into
deployments/<system_name>-core.yml.

Examples:
  boshcf render                          # Render the system found from the working directory
  boshcf render -s ~/systems/acme        # Render a specific system
  boshcf render -n                       # Print the manifest without writing
  boshcf render --secrets secrets.enc.yml
  boshcf render --director-uuid 6f8c2d1e-1b0a-4a3f-9a57-2d4f1c9e8b71`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRender,
}

func init() {
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "Print the manifest instead of writing it")
	renderCmd.Flags().StringVar(&renderSecrets, "secrets", "", "SOPS-encrypted secrets file overlaid on system.yml")
	renderCmd.Flags().StringVar(&renderDirectorUUID, "director-uuid", "", "Director UUID (overrides ~/.bosh_config)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	sc, err := loadSystemContext(renderSecrets)
	if err != nil {
		return err
	}

	if renderDirectorUUID != "" {
		bosh := config.BoshConfig{}
		if sc.Bosh != nil {
			bosh = *sc.Bosh
		}
		bosh.TargetUUID = renderDirectorUUID
		sc.Bosh = &bosh
	}

	logger := newLogger(cmd.ErrOrStderr())
	composer := manifest.NewComposer(
		manifest.WithContributorFactory(dea.Factory),
		manifest.WithLogger(logger),
	)

	doc, err := composer.Compose(sc.System, sc.Common, sc.Bosh)
	if err != nil {
		return err
	}

	if renderDryRun {
		data, err := manifest.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	path, err := manifest.WriteDeployment(doc, sc.System.SystemDir, sc.System.SystemName, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !ui.IsTerminal(os.Stdout) {
		fmt.Fprintln(out, path)
		return nil
	}
	ui.Success(out, "Rendered %s", doc.Name)
	ui.Field(out, "path", path)
	ui.Field(out, "director", displayOrNone(doc.DirectorUUID))
	ui.Field(out, "resource pools", len(doc.ResourcePools))
	ui.Field(out, "jobs", len(doc.Jobs))
	return nil
}

func displayOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
