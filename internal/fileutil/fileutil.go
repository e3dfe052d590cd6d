// Package fileutil writes rendered files without exposing partial content.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSymlinkNotSupported is returned when the destination is a symlink.
var ErrSymlinkNotSupported = errors.New("symlinks are not supported")

// WriteFileAtomic replaces dst with data. The bytes are synced to a sibling
// temp file which is then renamed over dst, creating parent directories
// as needed. An existing symlink at dst is refused.
func WriteFileAtomic(dst string, data []byte, perm fs.FileMode) error {
	if info, err := os.Lstat(dst); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		return fmt.Errorf("%s: %w", dst, ErrSymlinkNotSupported)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := writeTemp(dir, filepath.Base(dst), data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// writeTemp stores data in a hidden temp file next to base and returns its
// path. The file is removed again if any step fails.
func writeTemp(dir, base string, data []byte, perm fs.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(path, perm)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp file for %s: %w", base, err)
	}
	return path, nil
}
