package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CommonConfig holds user preferences shared across systems.
type CommonConfig struct {
	// TargetSystem is the system directory used when none is given.
	TargetSystem string `yaml:"target_system,omitempty"`

	// BoshTargetUUID caches the director UUID of the last target.
	BoshTargetUUID string `yaml:"bosh_target_uuid,omitempty"`
}

// BoshConfig is the subset of the BOSH CLI config this tool reads.
type BoshConfig struct {
	// Target is the director URL.
	Target string `yaml:"target,omitempty"`

	// TargetUUID identifies the director the manifest is rendered for.
	TargetUUID string `yaml:"target_uuid,omitempty"`
}

// ErrNoDirector indicates neither config names a director UUID.
var ErrNoDirector = errors.New("no BOSH director UUID configured")

// DirectorIdentity returns the director UUID, preferring the BOSH config over
// the value cached in common.
func (b *BoshConfig) DirectorIdentity(common *CommonConfig) (string, error) {
	if b != nil && b.TargetUUID != "" {
		return b.TargetUUID, nil
	}
	if common != nil && common.BoshTargetUUID != "" {
		return common.BoshTargetUUID, nil
	}
	return "", ErrNoDirector
}

// Path overrides, intended for testing.
var (
	commonPathOverride string
	boshPathOverride   string
)

// SetCommonPath overrides the common config path. Intended for testing.
func SetCommonPath(p string) { commonPathOverride = p }

// SetBoshPath overrides the BOSH config path. Intended for testing.
func SetBoshPath(p string) { boshPathOverride = p }

// ResetPaths clears path overrides. Intended for testing.
func ResetPaths() {
	commonPathOverride = ""
	boshPathOverride = ""
}

// CommonPath returns ~/.boshcf/config.yml unless overridden.
func CommonPath() (string, error) {
	if commonPathOverride != "" {
		return commonPathOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine home directory: %w", err)
	}
	return filepath.Join(home, ".boshcf", "config.yml"), nil
}

// BoshPath returns ~/.bosh_config unless overridden.
func BoshPath() (string, error) {
	if boshPathOverride != "" {
		return boshPathOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine home directory: %w", err)
	}
	return filepath.Join(home, ".bosh_config"), nil
}

// LoadCommon reads the common config. A missing file yields an empty config.
func LoadCommon() (*CommonConfig, error) {
	path, err := CommonPath()
	if err != nil {
		return nil, err
	}
	var cfg CommonConfig
	if err := loadOptionalYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadBosh reads the BOSH CLI config. A missing file yields an empty config.
func LoadBosh() (*BoshConfig, error) {
	path, err := BoshPath()
	if err != nil {
		return nil, err
	}
	var cfg BoshConfig
	if err := loadOptionalYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// The BOSH CLI config carries many keys we don't model, so decoding is lenient.
func loadOptionalYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}
