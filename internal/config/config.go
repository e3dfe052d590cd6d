// Package config handles system discovery and the configuration records
// that feed deployment manifest rendering.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SystemFile is the name of the system configuration file inside a system directory.
const SystemFile = "system.yml"

// SystemTemplateFile is the templated variant of SystemFile.
const SystemTemplateFile = SystemFile + ".tmpl"

// SystemConfig describes one Cloud Foundry system: what to deploy, where,
// and with which shared credentials.
type SystemConfig struct {
	// SystemDir is the directory holding the system config and its deployments.
	SystemDir string `yaml:"system_dir,omitempty"`

	// SystemName names the system; deployments are named "<system_name>-core".
	SystemName string `yaml:"system_name,omitempty"`

	// BoshProvider is the infrastructure provider (e.g., "aws").
	BoshProvider string `yaml:"bosh_provider"`

	ReleaseName     string `yaml:"release_name"`
	ReleaseVersion  string `yaml:"release_version"`
	StemcellName    string `yaml:"stemcell_name"`
	StemcellVersion string `yaml:"stemcell_version"`

	// CoreServerFlavor is the instance size of the core VM (e.g., "m1.large").
	CoreServerFlavor string `yaml:"core_server_flavor"`

	// CoreIP is the public IP bound to the core VM.
	CoreIP string `yaml:"core_ip"`

	// RootDNS is the domain the system is served under.
	RootDNS string `yaml:"root_dns"`

	// AdminEmails are granted cloud controller admin rights.
	AdminEmails []string `yaml:"admin_emails"`

	// CommonPassword seeds every service password.
	CommonPassword string `yaml:"common_password"`

	// CommonPersistentDisk is the persistent disk size in MB.
	CommonPersistentDisk int `yaml:"common_persistent_disk"`

	AWSSecurityGroup string `yaml:"aws_security_group"`

	// Dea configures the DEA worker tier.
	Dea DeaConfig `yaml:"dea,omitempty"`
}

// DeaConfig sizes the DEA worker tier. A zero Count co-locates the DEA on
// the core VM.
type DeaConfig struct {
	Count        int    `yaml:"count,omitempty"`
	ServerFlavor string `yaml:"server_flavor,omitempty"`
}

// FindSystemDir searches upward from start to find a system directory.
// A system directory is identified by a system.yml or system.yml.tmpl file.
func FindSystemDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		if _, err := SystemConfigPath(dir); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("system directory not found (no %s above %s)", SystemFile, start)
}

// SystemConfigPath returns the config file inside systemDir, preferring the
// plain file over the template.
func SystemConfigPath(systemDir string) (string, error) {
	for _, name := range []string{SystemFile, SystemTemplateFile} {
		path := filepath.Join(systemDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", SystemFile, systemDir)
}

// DeploymentsDir returns the directory rendered deployment manifests are written to.
func (c *SystemConfig) DeploymentsDir() string {
	return filepath.Join(c.SystemDir, "deployments")
}
