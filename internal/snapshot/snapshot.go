// Package snapshot keeps previous versions of rendered deployment manifests
// so a bad render can be rolled back.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/cameronsjo/boshcf/internal/fileutil"
)

const (
	// TimeLayout stamps snapshot names. Nanoseconds keep two renders in the
	// same second apart.
	TimeLayout = "20060102-150405.000000000"
	// MaxSnapshots is how many snapshots a system keeps.
	MaxSnapshots = 20
)

// ErrNotFound is returned by Restore for an unknown snapshot name.
var ErrNotFound = errors.New("snapshot not found")

// Info describes one stored snapshot.
type Info struct {
	// Name is "<timestamp>_<manifest>", e.g. "20260115-093000.000000000_acme-core.yml".
	Name     string
	Path     string
	Manifest string
	Created  time.Time
}

// Replaced in tests.
var (
	now        = time.Now
	removeFile = os.Remove
)

// Dir is where a system's snapshots live.
func Dir(systemDir string) string {
	return filepath.Join(systemDir, ".boshcf", "snapshots")
}

func parseName(name string) (manifest string, created time.Time, ok bool) {
	stamp, manifest, found := strings.Cut(name, "_")
	if !found || manifest == "" {
		return "", time.Time{}, false
	}
	created, err := time.Parse(TimeLayout, stamp)
	if err != nil {
		return "", time.Time{}, false
	}
	return manifest, created, true
}

// Create stores a copy of manifestPath and prunes old snapshots. It returns
// the new snapshot's name, or "" when manifestPath does not exist yet.
// Prune failures do not fail the snapshot; they are logged as warnings.
func Create(systemDir, manifestPath string, logger hclog.Logger) (string, error) {
	data, err := os.ReadFile(manifestPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}

	name := now().Format(TimeLayout) + "_" + filepath.Base(manifestPath)
	if err := fileutil.WriteFileAtomic(filepath.Join(Dir(systemDir), name), data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	if err := Cleanup(systemDir); err != nil {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		logger.Warn("failed to prune snapshots", "system_dir", systemDir, "error", err)
	}
	return name, nil
}

// List returns the system's snapshots, newest first. Files that do not look
// like snapshots are ignored.
func List(systemDir string) ([]Info, error) {
	dir := Dir(systemDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		manifest, created, ok := parseName(e.Name())
		if !ok {
			continue
		}
		infos = append(infos, Info{
			Name:     e.Name(),
			Path:     filepath.Join(dir, e.Name()),
			Manifest: manifest,
			Created:  created,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Created.After(infos[j].Created)
	})
	return infos, nil
}

// Restore writes snapshot name back to manifestPath. The manifest being
// replaced is snapshotted first, so a restore can itself be undone.
func Restore(systemDir, name, manifestPath string, logger hclog.Logger) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(Dir(systemDir), name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if _, err := Create(systemDir, manifestPath, logger); err != nil {
		return fmt.Errorf("snapshot current manifest: %w", err)
	}
	if err := fileutil.WriteFileAtomic(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("restore %s: %w", name, err)
	}
	return nil
}

// Cleanup deletes everything past the newest MaxSnapshots. Every removal is
// attempted and all failures are returned together.
func Cleanup(systemDir string) error {
	infos, err := List(systemDir)
	if err != nil {
		return err
	}
	if len(infos) <= MaxSnapshots {
		return nil
	}

	var result *multierror.Error
	for _, info := range infos[MaxSnapshots:] {
		if err := removeFile(info.Path); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
