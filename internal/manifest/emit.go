package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/boshcf/internal/fileutil"
	"github.com/cameronsjo/boshcf/internal/lock"
	"github.com/cameronsjo/boshcf/internal/snapshot"
)

// Marshal encodes a document as YAML with two-space indentation.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// DeploymentPath returns where a system's core manifest is written.
func DeploymentPath(systemDir, systemName string) string {
	return filepath.Join(systemDir, "deployments", DeploymentName(systemName)+".yml")
}

// WriteDeployment writes doc to DeploymentPath while holding the system's
// render lock and returns the path written. A previous manifest with
// different content is snapshotted before it is replaced.
func WriteDeployment(doc *Document, systemDir, systemName string, logger hclog.Logger) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}

	path := DeploymentPath(systemDir, systemName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create deployments directory: %w", err)
	}

	err = lock.WithLock(systemDir, "render", func() error {
		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, data) {
			return nil
		}
		if _, err := snapshot.Create(systemDir, path, logger); err != nil {
			return err
		}
		return fileutil.WriteFileAtomic(path, data, 0644)
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
