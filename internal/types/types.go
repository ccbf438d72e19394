// Package types defines every cross-package data structure used by the promptpack CLI.
package types

// Classification describes how a file is rendered into the document.
type Classification string

const (
	// ClassificationBinary marks files excluded from content rendering.
	ClassificationBinary Classification = "binary"
	// ClassificationCode marks files rendered in full.
	ClassificationCode Classification = "code"
	// ClassificationText marks files rendered with head/tail truncation.
	ClassificationText Classification = "text"
)

// Prompt modes selecting the instruction preamble.
const (
	ModeExport   = "export"
	ModeAck      = "ack"
	ModeDescribe = "describe"
)

// Sort orders applied to collected files before rendering.
const (
	SortByPath = "path"
	SortByName = "name"
	SortNone   = "none"
)

// ValidatedRoot is an absolute project root path that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
}

// FileEntry identifies one file discovered by the walker.
type FileEntry struct {
	// RelativePath is slash-separated and relative to the project root.
	RelativePath string
	// AbsolutePath locates the file on disk.
	AbsolutePath string
}

// RenderedFile is the Markdown representation of a single file.
type RenderedFile struct {
	RelativePath   string
	Classification Classification
	// Block holds the complete Markdown section for the file. Empty for
	// binary files, which are noted by name only.
	Block string
	// Truncated reports whether head/tail elision was applied.
	Truncated bool
	// OmittedLines is the number of elided lines when Truncated is true.
	OmittedLines int
}

// DocumentStats aggregates figures reported in the document metadata section.
type DocumentStats struct {
	RenderedFiles  int
	SkippedBinary  []string
	TotalSizeBytes int64
	TokenCount     int
	TokenModel     string
}
