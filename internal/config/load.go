package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// LoadSystemDir loads the system config found in systemDir.
func LoadSystemDir(systemDir string) (*SystemConfig, error) {
	path, err := SystemConfigPath(systemDir)
	if err != nil {
		return nil, err
	}
	return LoadSystemConfig(path)
}

// LoadSystemConfig reads a system config file. Files ending in .tmpl are
// rendered as Go templates (with sprig functions) before decoding.
// SystemDir defaults to the file's directory and SystemName to its base name.
func LoadSystemConfig(path string) (*SystemConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system config: %w", err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve system dir: %w", err)
	}

	if strings.HasSuffix(path, ".tmpl") {
		content, err = renderTemplate(filepath.Base(path), content, map[string]any{
			"system_dir":  dir,
			"system_name": filepath.Base(dir),
		})
		if err != nil {
			return nil, err
		}
	}

	cfg, err := ParseSystemConfig(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.SystemDir == "" {
		cfg.SystemDir = dir
	}
	if cfg.SystemName == "" {
		cfg.SystemName = filepath.Base(cfg.SystemDir)
	}

	return cfg, nil
}

// ParseSystemConfig decodes YAML into a SystemConfig, rejecting unknown keys.
// An empty document yields an empty config.
func ParseSystemConfig(data []byte) (*SystemConfig, error) {
	var cfg SystemConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

func renderTemplate(name string, content []byte, data map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
