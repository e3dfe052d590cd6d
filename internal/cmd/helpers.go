package cmd

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/cameronsjo/boshcf/internal/config"
)

// systemContext is everything a command needs to render one system.
type systemContext struct {
	System *config.SystemConfig
	Common *config.CommonConfig
	Bosh   *config.BoshConfig
}

// newLogger returns the compose trace logger. Tracing goes to w at Debug
// level with --verbose; otherwise only warnings are shown.
func newLogger(w io.Writer) hclog.Logger {
	level := hclog.Warn
	if verboseFlag {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "boshcf",
		Level:  level,
		Output: w,
	})
}

// resolveSystemDir picks the system directory from --system, then the
// common config's target_system, then an upward search from the working
// directory.
func resolveSystemDir(common *config.CommonConfig) (string, error) {
	if systemFlag != "" {
		return systemFlag, nil
	}
	if common != nil && common.TargetSystem != "" {
		return common.TargetSystem, nil
	}
	return config.FindSystemDir(".")
}

// loadSystemContext loads the common, BOSH and system configs. A non-empty
// secretsPath is decrypted and overlaid on the system config.
func loadSystemContext(secretsPath string) (*systemContext, error) {
	common, err := config.LoadCommon()
	if err != nil {
		return nil, err
	}

	bosh, err := config.LoadBosh()
	if err != nil {
		return nil, err
	}

	systemDir, err := resolveSystemDir(common)
	if err != nil {
		return nil, err
	}

	sys, err := config.LoadSystemDir(systemDir)
	if err != nil {
		return nil, fmt.Errorf("load system: %w", err)
	}

	if secretsPath != "" {
		if err := config.ApplySecrets(sys, secretsPath); err != nil {
			return nil, err
		}
	}

	return &systemContext{System: sys, Common: common, Bosh: bosh}, nil
}

// directorUUID resolves the director UUID for display and lint, without
// treating its absence as an error.
func (s *systemContext) directorUUID() string {
	uuid, _ := s.Bosh.DirectorIdentity(s.Common)
	return uuid
}
