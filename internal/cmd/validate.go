package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/config"
	"github.com/cameronsjo/boshcf/internal/dea"
	"github.com/cameronsjo/boshcf/internal/manifest"
	"github.com/cameronsjo/boshcf/internal/ui"
)

var validateSecrets string

// errValidationFailed is returned once every problem has been printed.
var errValidationFailed = errors.New("validation failed")

// validateCmd checks a system config without rendering.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate system.yml without rendering",
	Long: `Validate a system's configuration without writing anything.

This command performs validation checks:
  1. Required system config fields are set
  2. The BOSH provider is supported
  3. The DEA tier resolves to a known server flavor
  4. Field formats look right (advisory warnings only)

Examples:
  boshcf validate
  boshcf validate -s ~/systems/acme --secrets secrets.enc.yml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSecrets, "secrets", "", "SOPS-encrypted secrets file overlaid on system.yml")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sc, err := loadSystemContext(validateSecrets)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	problems := validateSystem(sc.System)
	warnings := config.Lint(sc.System, sc.directorUUID())

	for _, p := range problems {
		fmt.Fprintf(out, "error: %s\n", p)
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	if len(problems) > 0 {
		ui.Error(out, "%s: %d error(s), %d warning(s)", manifest.DeploymentName(sc.System.SystemName), len(problems), len(warnings))
		return errValidationFailed
	}
	if len(warnings) > 0 {
		ui.Warning(out, "%s is valid with %d warning(s)", manifest.DeploymentName(sc.System.SystemName), len(warnings))
		return nil
	}
	ui.Success(out, "%s is valid", manifest.DeploymentName(sc.System.SystemName))
	return nil
}

// validateSystem returns every blocking problem with sys.
func validateSystem(sys *config.SystemConfig) []string {
	var problems []string

	var mfe *manifest.MissingFieldsError
	if err := manifest.ValidateSystemConfig(sys); errors.As(err, &mfe) {
		for _, field := range mfe.Fields {
			problems = append(problems, fmt.Sprintf("%s is not set", field))
		}
	}

	if sys.BoshProvider != "" && !manifest.IsSupportedProvider(sys.BoshProvider) {
		problems = append(problems, fmt.Sprintf("bosh_provider %q is not supported (supported: %v)",
			sys.BoshProvider, manifest.SupportedProviders()))
	}

	if sys.CoreServerFlavor != "" && manifest.IsSupportedProvider(sys.BoshProvider) {
		if _, err := dea.FromSystemConfig(sys); err != nil {
			problems = append(problems, err.Error())
		}
	}

	return problems
}
