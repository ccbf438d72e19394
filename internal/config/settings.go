// Package config holds the immutable classification settings and loads the
// optional application configuration file.
package config

import (
	"path/filepath"
	"strings"

	"github.com/promptpack/promptpack/internal/utils"
)

// DefaultTruncateLines is the default head/tail line window for text files.
const DefaultTruncateLines = 50

// defaultExcludedDirectories lists well-known non-source directory names
// that are never traversed.
var defaultExcludedDirectories = []string{
	".git", ".svn", ".hg", ".idea", ".vscode",
	"node_modules", "dist", "build", ".next", ".cache",
	".pytest_cache", ".mypy_cache", ".ruff_cache",
	".venv", "venv", "__pycache__",
}

// codeExtensions is the allow-list of extensions rendered in full. Plain
// .txt is deliberately absent: prose files fall under the text truncation
// policy rather than full rendering.
var codeExtensions = map[string]struct{}{
	".md": {}, ".rst": {},
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".mjs": {}, ".cjs": {},
	".css": {}, ".scss": {}, ".sass": {}, ".less": {}, ".html": {},
	".py": {}, ".pyi": {},
	".java": {}, ".kt": {}, ".kts": {},
	".c": {}, ".cc": {}, ".cpp": {}, ".cxx": {},
	".h": {}, ".hh": {}, ".hpp": {}, ".m": {}, ".mm": {},
	".cs": {},
	".go": {}, ".rs": {}, ".swift": {},
	".rb": {}, ".php": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".fish": {}, ".ps1": {}, ".bat": {},
	".yml": {}, ".yaml": {}, ".toml": {}, ".ini": {}, ".cfg": {}, ".conf": {},
	".json": {}, ".jsonc": {},
	".sql": {}, ".csv": {}, ".tsv": {},
	".gradle": {}, ".properties": {},
}

// specialCodeFilenames maps extension-less or dotfile names recognized as
// code to their Markdown fence language. Dot-prefixed names have no place
// here: the walker drops hidden entries before classification runs.
var specialCodeFilenames = map[string]string{
	"Dockerfile": "docker",
	"dockerfile": "docker",
	"Makefile":   "make",
	"Justfile":   "make",
	"Procfile":   "procfile",
	"LICENSE":    "",
	"LICENCE":    "",
	"COPYING":    "",
}

// fenceLanguageByExtension maps extensions to Markdown fence languages.
var fenceLanguageByExtension = map[string]string{
	".py": "python", ".pyi": "python",
	".js": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".ts": "typescript", ".tsx": "tsx", ".jsx": "jsx",
	".java": "java", ".kt": "kotlin", ".kts": "kotlin",
	".c": "c", ".cc": "cpp", ".cpp": "cpp", ".cxx": "cpp",
	".h": "cpp", ".hh": "cpp", ".hpp": "cpp",
	".m": "objective-c", ".mm": "objective-c",
	".cs": "csharp", ".go": "go", ".rs": "rust", ".swift": "swift",
	".rb": "ruby", ".php": "php",
	".sh": "bash", ".bash": "bash", ".zsh": "bash", ".fish": "bash",
	".ps1": "powershell", ".bat": "bat",
	".yml": "yaml", ".yaml": "yaml", ".toml": "toml",
	".ini": "ini", ".cfg": "ini", ".conf": "ini",
	".json": "json", ".jsonc": "json",
	".css": "css", ".scss": "scss", ".sass": "sass", ".less": "less",
	".html": "html", ".md": "markdown", ".rst": "rst",
	".sql": "sql", ".csv": "csv", ".tsv": "tsv",
	".gradle": "groovy", ".properties": "properties",
}

// Settings is the immutable classification and exclusion configuration,
// built once at startup and passed explicitly into the walker and classifier.
type Settings struct {
	excludedDirectories map[string]struct{}
	truncateLines       int
}

// NewSettings builds Settings with the built-in excluded directory names plus
// the provided additional names and the requested truncation window.
func NewSettings(additionalExcludedDirectories []string, truncateLines int) Settings {
	if truncateLines <= 0 {
		truncateLines = DefaultTruncateLines
	}
	excluded := make(map[string]struct{}, len(defaultExcludedDirectories)+len(additionalExcludedDirectories))
	for _, directoryName := range defaultExcludedDirectories {
		excluded[directoryName] = struct{}{}
	}
	for _, directoryName := range utils.DeduplicateStrings(additionalExcludedDirectories) {
		trimmedName := strings.TrimSpace(directoryName)
		if trimmedName != "" {
			excluded[trimmedName] = struct{}{}
		}
	}
	return Settings{excludedDirectories: excluded, truncateLines: truncateLines}
}

// TruncateLines returns the head/tail line window applied to text files.
func (settings Settings) TruncateLines() int {
	return settings.truncateLines
}

// IsExcludedDirectory reports whether the directory name is on the exclusion list.
func (settings Settings) IsExcludedDirectory(directoryName string) bool {
	_, excluded := settings.excludedDirectories[directoryName]
	return excluded
}

// IsCodeExtension reports whether the file name carries an allow-listed
// extension. Matching is case-insensitive.
func (settings Settings) IsCodeExtension(fileName string) bool {
	if _, special := specialCodeFilenames[fileName]; special {
		return true
	}
	extension := strings.ToLower(filepath.Ext(fileName))
	if extension == "" {
		return false
	}
	_, listed := codeExtensions[extension]
	return listed
}

// FenceLanguage returns the Markdown fence language for the file name, or an
// empty string when no mapping exists.
func (settings Settings) FenceLanguage(fileName string) string {
	if language, special := specialCodeFilenames[fileName]; special {
		return language
	}
	extension := strings.ToLower(filepath.Ext(fileName))
	return fenceLanguageByExtension[extension]
}
