package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/boshcf/internal/lock"
	"github.com/cameronsjo/boshcf/internal/manifest"
	"github.com/cameronsjo/boshcf/internal/snapshot"
)

// historyLimit caps how many snapshots history prints.
const historyLimit = 10

var historyAll bool

// historyCmd lists previous core manifests kept by render.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous core manifests",
	Long: `List the core manifests kept before render replaced them, newest first.

A snapshot is taken whenever render changes an existing manifest.
Use 'boshcf rollback <snapshot>' to restore one.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

// rollbackCmd restores a previous core manifest.
var rollbackCmd = &cobra.Command{
	Use:   "rollback [snapshot]",
	Short: "Restore a previous core manifest",
	Long: `Restore a snapshot over the current core manifest. Without an argument
the newest snapshot is restored. The manifest being replaced is snapshotted
first, so a rollback can itself be rolled back.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	RunE:              runRollback,
	ValidArgsFunction: completeSnapshots,
}

func init() {
	historyCmd.Flags().BoolVarP(&historyAll, "all", "a", false, "Show every snapshot")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rollbackCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	sc, err := loadSystemContext("")
	if err != nil {
		return err
	}

	snapshots, err := snapshot.List(sc.System.SystemDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No snapshots found")
		return nil
	}

	for i, snap := range snapshots {
		if i >= historyLimit && !historyAll {
			fmt.Fprintf(out, "... and %d more\n", len(snapshots)-historyLimit)
			break
		}
		fmt.Fprintf(out, "%s  %s\n", snap.Name, snap.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRollback(cmd *cobra.Command, args []string) error {
	sc, err := loadSystemContext("")
	if err != nil {
		return err
	}
	systemDir := sc.System.SystemDir

	var target string
	if len(args) == 1 {
		target = args[0]
	} else {
		snapshots, err := snapshot.List(systemDir)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return fmt.Errorf("no snapshots available for %s", sc.System.SystemName)
		}
		target = snapshots[0].Name
	}

	path := manifest.DeploymentPath(systemDir, sc.System.SystemName)
	err = lock.WithLock(systemDir, "render", func() error {
		return snapshot.Restore(systemDir, target, path, newLogger(cmd.ErrOrStderr()))
	})
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", target, path)
	return nil
}
