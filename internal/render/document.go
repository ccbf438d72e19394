package render

import (
	"fmt"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	exportPreamble = `# Project Prompt

> The content below is a Markdown export of a project. Treat it as the full
> project source and wait for further instructions before acting on it.
`
	ackPreamble = `# Context

> Read the project below and reply only with ` + "`OK`" + `.
`
	describePreamble = `# Task

> Describe this project: its purpose, structure, and main dependencies,
> based solely on the content provided below.
`

	metadataHeading        = "## Metadata"
	tableOfContentsHeading = "## Table of Contents"
	sectionSeparator       = "\n---\n\n"
)

// DocumentOptions carries everything the assembler needs beyond the
// rendered file blocks. The document deliberately contains no timestamp:
// repeated runs on an unchanged tree must produce byte-identical output.
type DocumentOptions struct {
	Mode     string
	RootPath string
	Version  string
	Stats    types.DocumentStats
}

// AssembleDocument concatenates the mode preamble, metadata, table of
// contents, and all file blocks into the final Markdown document. The
// document always begins with exactly one mode-specific instruction block.
func AssembleDocument(options DocumentOptions, files []types.RenderedFile) string {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(preambleForMode(options.Mode))
	documentBuilder.WriteString(sectionSeparator)
	documentBuilder.WriteString(metadataSection(options))
	documentBuilder.WriteString(sectionSeparator)
	documentBuilder.WriteString(tableOfContents(files))
	documentBuilder.WriteString(sectionSeparator)
	for _, renderedFile := range files {
		if renderedFile.Block == "" {
			continue
		}
		documentBuilder.WriteString(renderedFile.Block)
		documentBuilder.WriteString("\n")
	}
	return documentBuilder.String()
}

// preambleForMode returns the instruction block for the selected mode.
// Unknown modes fall back to the export preamble.
func preambleForMode(mode string) string {
	switch mode {
	case types.ModeAck:
		return ackPreamble
	case types.ModeDescribe:
		return describePreamble
	default:
		return exportPreamble
	}
}

// metadataSection reports the root, generation context, and aggregate figures.
func metadataSection(options DocumentOptions) string {
	var sectionBuilder strings.Builder
	sectionBuilder.WriteString(metadataHeading)
	sectionBuilder.WriteString("\n\n")
	sectionBuilder.WriteString(fmt.Sprintf("- Root: `%s`\n", options.RootPath))
	if options.Version != "" {
		sectionBuilder.WriteString(fmt.Sprintf("- Tool version: `%s`\n", options.Version))
	}
	sectionBuilder.WriteString(fmt.Sprintf("- Files: %d\n", options.Stats.RenderedFiles))
	sectionBuilder.WriteString(fmt.Sprintf("- Total size: %s\n", utils.FormatFileSize(options.Stats.TotalSizeBytes)))
	if options.Stats.TokenCount > 0 && options.Stats.TokenModel != "" {
		sectionBuilder.WriteString(fmt.Sprintf("- Estimated tokens: %d (%s)\n", options.Stats.TokenCount, options.Stats.TokenModel))
	}
	if len(options.Stats.SkippedBinary) > 0 {
		sectionBuilder.WriteString("- Skipped binary files:\n")
		for _, skippedName := range options.Stats.SkippedBinary {
			sectionBuilder.WriteString(fmt.Sprintf("  - `%s`\n", skippedName))
		}
	}
	return sectionBuilder.String()
}

// tableOfContents links every rendered file to its anchor.
func tableOfContents(files []types.RenderedFile) string {
	var sectionBuilder strings.Builder
	sectionBuilder.WriteString(tableOfContentsHeading)
	sectionBuilder.WriteString("\n\n")
	for _, renderedFile := range files {
		if renderedFile.Block == "" {
			continue
		}
		sectionBuilder.WriteString(fmt.Sprintf("- [%s](#%s)\n", renderedFile.RelativePath, anchorFromPath(renderedFile.RelativePath)))
	}
	return sectionBuilder.String()
}
