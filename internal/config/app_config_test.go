package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

func boolPointer(value bool) *bool { return &value }

func intPointer(value int) *int { return &value }

// TestApplicationConfigurationMerge verifies that overrides replace only what
// they explicitly set.
func TestApplicationConfigurationMerge(testingHandle *testing.T) {
	base := ApplicationConfiguration{
		Mode:          "export",
		TruncateLines: intPointer(50),
		Clipboard:     boolPointer(true),
		Exclude:       []string{"vendor"},
	}
	override := ApplicationConfiguration{
		Mode:      "ack",
		Clipboard: boolPointer(false),
		Tokens:    TokenConfiguration{Model: "gpt-4o"},
	}

	merged := base.Merge(override)
	if merged.Mode != "ack" {
		testingHandle.Errorf("expected mode ack, got %s", merged.Mode)
	}
	if merged.TruncateLines == nil || *merged.TruncateLines != 50 {
		testingHandle.Errorf("expected truncate window 50 to survive the merge")
	}
	if merged.Clipboard == nil || *merged.Clipboard {
		testingHandle.Errorf("expected clipboard override to false")
	}
	if len(merged.Exclude) != 1 || merged.Exclude[0] != "vendor" {
		testingHandle.Errorf("expected base excludes to survive, got %v", merged.Exclude)
	}
	if merged.Tokens.Model != "gpt-4o" {
		testingHandle.Errorf("expected token model gpt-4o, got %s", merged.Tokens.Model)
	}
}

// TestLoadConfigurationFromPath verifies YAML decoding of a configuration file.
func TestLoadConfigurationFromPath(testingHandle *testing.T) {
	configurationDirectory := testingHandle.TempDir()
	configurationPath := filepath.Join(configurationDirectory, ConfigFileName)
	writeTestFile(testingHandle, configurationPath, `mode: describe
truncate_lines: 25
clipboard: false
exclude:
  - vendor
  - vendor
tokens:
  enabled: true
  model: gpt-4o
`)

	loaded, loadError := loadConfigurationFromPath(configurationPath)
	if loadError != nil {
		testingHandle.Fatalf("loadConfigurationFromPath error: %v", loadError)
	}
	if loaded.Mode != "describe" {
		testingHandle.Errorf("expected mode describe, got %s", loaded.Mode)
	}
	if loaded.TruncateLines == nil || *loaded.TruncateLines != 25 {
		testingHandle.Errorf("expected truncate window 25")
	}
	if loaded.Clipboard == nil || *loaded.Clipboard {
		testingHandle.Errorf("expected clipboard false")
	}
	if loaded.Tokens.Enabled == nil || !*loaded.Tokens.Enabled {
		testingHandle.Errorf("expected tokens enabled")
	}
}

// TestLoadConfigurationFromPathMissing verifies that a missing file yields an
// empty configuration with no error.
func TestLoadConfigurationFromPathMissing(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), ConfigFileName)
	loaded, loadError := loadConfigurationFromPath(missingPath)
	if loadError != nil {
		testingHandle.Fatalf("expected no error for a missing file, got %v", loadError)
	}
	if loaded.Mode != "" || loaded.TruncateLines != nil {
		testingHandle.Errorf("expected empty configuration, got %+v", loaded)
	}
}

// TestInitializeConfigurationLocal verifies config scaffolding and the
// overwrite guard.
func TestInitializeConfigurationLocal(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	writtenPath, initError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	})
	if initError != nil {
		testingHandle.Fatalf("InitializeConfiguration error: %v", initError)
	}
	if writtenPath != filepath.Join(workingDirectory, ConfigFileName) {
		testingHandle.Errorf("unexpected configuration path %s", writtenPath)
	}

	loaded, loadError := loadConfigurationFromPath(writtenPath)
	if loadError != nil {
		testingHandle.Fatalf("loading written configuration: %v", loadError)
	}
	if loaded.Mode != "export" {
		testingHandle.Errorf("expected default mode export, got %s", loaded.Mode)
	}

	if _, repeatError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); repeatError == nil {
		testingHandle.Errorf("expected an error without --force when the file exists")
	}
	if _, forcedError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
		Force:            true,
	}); forcedError != nil {
		testingHandle.Errorf("expected forced initialization to succeed, got %v", forcedError)
	}
}
