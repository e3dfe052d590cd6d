package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// decryptFile is swapped out in tests so they do not need real SOPS keys.
var decryptFile = decrypt.File

// ApplySecrets decrypts a SOPS-encrypted file and overlays its keys onto cfg.
// Keys absent from the secrets file leave cfg untouched; unknown keys are
// an error.
func ApplySecrets(cfg *SystemConfig, path string) error {
	cleartext, err := decryptFile(path, secretsFormat(path))
	if err != nil {
		return fmt.Errorf("sops decrypt failed for %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(cleartext))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse decrypted secrets from %s: %w", path, err)
	}
	return nil
}

func secretsFormat(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
