package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/config"
	"github.com/cameronsjo/boshcf/internal/snapshot"
)

// secretsExtensions are the file types a SOPS secrets overlay can use.
var secretsExtensions = []string{"yml", "yaml", "json"}

// completeSystemDirs completes --system with directories that hold a system config.
// Falls back to plain directory completion when none are found.
func completeSystemDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	dir, prefix := filepath.Split(toComplete)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		candidate := filepath.Join(dir, e.Name())
		if _, err := config.SystemConfigPath(candidate); err == nil {
			dirs = append(dirs, candidate)
		}
	}

	if len(dirs) == 0 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return dirs, cobra.ShellCompDirectiveNoFileComp
}

// completeSecretsFiles completes --secrets with YAML and JSON files.
func completeSecretsFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return secretsExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeSnapshots completes rollback with the system's snapshot names.
func completeSnapshots(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	common, err := config.LoadCommon()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	systemDir, err := resolveSystemDir(common)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	snapshots, err := snapshot.List(systemDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, snap := range snapshots {
		if strings.HasPrefix(snap.Name, toComplete) {
			names = append(names, snap.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers all dynamic completions for commands.
func registerCompletions() {
	// Registration fails harmlessly when repeated; completions are optional
	_ = rootCmd.RegisterFlagCompletionFunc("system", completeSystemDirs)
	_ = renderCmd.RegisterFlagCompletionFunc("secrets", completeSecretsFiles)
	_ = validateCmd.RegisterFlagCompletionFunc("secrets", completeSecretsFiles)
	_ = renderCmd.RegisterFlagCompletionFunc("director-uuid", cobra.NoFileCompletions)
}

// init defers registration via cobra.OnInitialize so every flag is defined first.
func init() {
	cobra.OnInitialize(registerCompletions)
}
