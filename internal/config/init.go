package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `mode: export
truncate_lines: 50
clipboard: true
sort: path
hide_empty: false
use_gitignore: true
exclude: []
include: []
tokens:
  enabled: false
  model: gpt-4o
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the path written.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, ConfigFileName)
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		globalDirectory := filepath.Join(homeDirectory, GlobalConfigDirectoryName)
		if mkdirErr := os.MkdirAll(globalDirectory, 0o755); mkdirErr != nil {
			return "", fmt.Errorf("create global configuration directory %s: %w", globalDirectory, mkdirErr)
		}
		destinationPath = filepath.Join(globalDirectory, ConfigFileName)
	default:
		return "", fmt.Errorf("unsupported configuration target %q", target)
	}

	if !options.Force {
		if _, statErr := os.Stat(destinationPath); statErr == nil {
			return "", fmt.Errorf("configuration %s already exists; use --force to overwrite", destinationPath)
		}
	}

	if writeErr := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o644); writeErr != nil {
		return "", fmt.Errorf("write configuration %s: %w", destinationPath, writeErr)
	}
	return destinationPath, nil
}
