// Package render formats files into Markdown blocks and assembles the final document.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/promptpack/promptpack/internal/classify"
	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
)

const (
	// minimumFenceLength is the shortest fence emitted for any block.
	minimumFenceLength = 3
	fenceCharacter     = "`"
	// elisionMarkerFormat is the single line inserted between the head and
	// tail segments of a truncated text file.
	elisionMarkerFormat = "... [%d lines omitted] ..."
	// truncationNoteFormat precedes a truncated block and names the window.
	truncationNoteFormat = "> Text file truncated to the first and last %d lines.\n\n"
)

// RenderFile classifies the file content and produces its Markdown block.
// Binary files yield an empty block; they are reported by name only in the
// document metadata.
func RenderFile(entry types.FileEntry, content []byte, settings config.Settings) types.RenderedFile {
	classification := classify.Classify(filepath.Base(entry.RelativePath), content, settings)

	rendered := types.RenderedFile{
		RelativePath:   entry.RelativePath,
		Classification: classification.Classification,
	}
	if classification.Classification == types.ClassificationBinary {
		return rendered
	}

	body := string(content)
	var sectionBuilder strings.Builder
	sectionBuilder.WriteString(fmt.Sprintf("## %s\n\n", entry.RelativePath))
	sectionBuilder.WriteString(fmt.Sprintf("<a id=%q></a>\n\n", anchorFromPath(entry.RelativePath)))

	if classification.Classification == types.ClassificationText {
		truncatedBody, omittedLines, truncated := truncateLines(body, settings.TruncateLines())
		if truncated {
			rendered.Truncated = true
			rendered.OmittedLines = omittedLines
			sectionBuilder.WriteString(fmt.Sprintf(truncationNoteFormat, settings.TruncateLines()))
			body = truncatedBody
		}
	}

	sectionBuilder.WriteString(fencedBlock(body, classification.FenceLanguage))
	rendered.Block = sectionBuilder.String()
	return rendered
}

// fencedBlock wraps content in a Markdown code fence guaranteed not to
// collide with backtick runs inside the content itself.
func fencedBlock(content string, language string) string {
	fence := strings.Repeat(fenceCharacter, fenceLength(content))
	var blockBuilder strings.Builder
	blockBuilder.WriteString(fence)
	blockBuilder.WriteString(language)
	blockBuilder.WriteString("\n")
	blockBuilder.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		blockBuilder.WriteString("\n")
	}
	blockBuilder.WriteString(fence)
	blockBuilder.WriteString("\n")
	return blockBuilder.String()
}

// fenceLength returns one more than the longest backtick run in content,
// never less than minimumFenceLength.
func fenceLength(content string) int {
	longestRun := 0
	currentRun := 0
	for _, character := range content {
		if character == '`' {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
		} else {
			currentRun = 0
		}
	}
	if longestRun+1 > minimumFenceLength {
		return longestRun + 1
	}
	return minimumFenceLength
}

// truncateLines applies the head/tail window to content. For line counts at
// or below twice the window the content is returned unchanged. Otherwise the
// result holds exactly window head lines, one elision marker line, and
// window tail lines.
func truncateLines(content string, window int) (string, int, bool) {
	lines := splitLines(content)
	if len(lines) <= 2*window {
		return content, 0, false
	}
	omitted := len(lines) - 2*window
	truncated := make([]string, 0, 2*window+1)
	truncated = append(truncated, lines[:window]...)
	truncated = append(truncated, fmt.Sprintf(elisionMarkerFormat, omitted))
	truncated = append(truncated, lines[len(lines)-window:]...)
	return strings.Join(truncated, "\n") + "\n", omitted, true
}

// splitLines breaks content into lines without counting a trailing newline
// as an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(content, "\n")
	return strings.Split(trimmed, "\n")
}

// anchorFromPath derives a Markdown anchor id from a relative path.
func anchorFromPath(relativePath string) string {
	anchor := strings.ToLower(filepath.ToSlash(relativePath))
	anchor = strings.ReplaceAll(anchor, "/", "-")
	anchor = strings.ReplaceAll(anchor, " ", "-")
	return anchor
}
