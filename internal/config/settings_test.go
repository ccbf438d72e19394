package config

import (
	"testing"
)

// TestSettingsCodeExtensions verifies case-insensitive extension matching and
// special filename recognition.
func TestSettingsCodeExtensions(testingHandle *testing.T) {
	settings := NewSettings(nil, 0)

	testCases := []struct {
		testName string
		fileName string
		expected bool
	}{
		{testName: "lowercase go", fileName: "main.go", expected: true},
		{testName: "uppercase extension", fileName: "SCRIPT.PY", expected: true},
		{testName: "special filename", fileName: "Dockerfile", expected: true},
		{testName: "license without extension", fileName: "LICENSE", expected: true},
		{testName: "no extension", fileName: "notes", expected: false},
		{testName: "unknown extension", fileName: "archive.xyz", expected: false},
		{testName: "hidden dotfile", fileName: ".env", expected: false},
	}
	for index, testCase := range testCases {
		if actual := settings.IsCodeExtension(testCase.fileName); actual != testCase.expected {
			testingHandle.Errorf("case %d (%s): expected %v for %s, got %v", index, testCase.testName, testCase.expected, testCase.fileName, actual)
		}
	}
}

// TestSettingsFenceLanguage verifies fence language lookup.
func TestSettingsFenceLanguage(testingHandle *testing.T) {
	settings := NewSettings(nil, 0)
	if language := settings.FenceLanguage("handler.py"); language != "python" {
		testingHandle.Errorf("expected python, got %s", language)
	}
	if language := settings.FenceLanguage("Makefile"); language != "make" {
		testingHandle.Errorf("expected make, got %s", language)
	}
	if language := settings.FenceLanguage("data.unknown"); language != "" {
		testingHandle.Errorf("expected empty language, got %s", language)
	}
}

// TestSettingsExcludedDirectories verifies built-in and additional exclusions.
func TestSettingsExcludedDirectories(testingHandle *testing.T) {
	settings := NewSettings([]string{"generated", " spaced "}, 0)
	for _, excludedName := range []string{"node_modules", ".git", "__pycache__", "generated", "spaced"} {
		if !settings.IsExcludedDirectory(excludedName) {
			testingHandle.Errorf("expected %s to be excluded", excludedName)
		}
	}
	if settings.IsExcludedDirectory("src") {
		testingHandle.Errorf("did not expect src to be excluded")
	}
}

// TestSettingsTruncateLinesDefault verifies the default window applies for
// non-positive values.
func TestSettingsTruncateLinesDefault(testingHandle *testing.T) {
	if window := NewSettings(nil, 0).TruncateLines(); window != DefaultTruncateLines {
		testingHandle.Errorf("expected default window %d, got %d", DefaultTruncateLines, window)
	}
	if window := NewSettings(nil, 10).TruncateLines(); window != 10 {
		testingHandle.Errorf("expected window 10, got %d", window)
	}
}
