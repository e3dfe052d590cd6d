package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/boshcf/internal/config"
)

const acmeSystemYAML = `bosh_provider: aws
release_name: appcloud
release_version: latest
stemcell_name: bosh-stemcell
stemcell_version: 0.6.4
core_server_flavor: m1.large
core_ip: 10.0.0.5
root_dns: acme.io
admin_emails:
  - a@acme.io
common_password: c1oudc0w
common_persistent_disk: 4096
aws_security_group: acme-cf
`

// resetState resets package flag variables and points the common and BOSH
// configs at an empty temp directory so tests never read the real home.
func resetState(t *testing.T) {
	t.Helper()

	systemFlag = ""
	verboseFlag = false
	renderDryRun = false
	renderSecrets = ""
	renderDirectorUUID = ""
	validateSecrets = ""
	historyAll = false

	home := t.TempDir()
	config.SetCommonPath(filepath.Join(home, "config.yml"))
	config.SetBoshPath(filepath.Join(home, "bosh_config"))
	t.Cleanup(config.ResetPaths)
}

// writeSystem creates a system directory named name holding system.yml.
func writeSystem(t *testing.T, name, content string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SystemFile), []byte(content), 0644))
	return dir
}

// executeCmd executes the root command with the given args and returns the output.
// This handles proper state reset between test executions.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	// Important: Set args BEFORE setting output buffers
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}
