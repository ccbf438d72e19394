package render_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/render"
	"github.com/promptpack/promptpack/internal/types"
)

func numberedLines(count int) string {
	var contentBuilder strings.Builder
	for lineNumber := 1; lineNumber <= count; lineNumber++ {
		contentBuilder.WriteString(fmt.Sprintf("line %d\n", lineNumber))
	}
	return contentBuilder.String()
}

// TestRenderFileCodeKeptInFull verifies that code files are never truncated,
// regardless of length.
func TestRenderFileCodeKeptInFull(testingHandle *testing.T) {
	settings := config.NewSettings(nil, 5)
	entry := types.FileEntry{RelativePath: "pkg/big.go"}
	content := numberedLines(200)

	rendered := render.RenderFile(entry, []byte(content), settings)
	if rendered.Classification != types.ClassificationCode {
		testingHandle.Fatalf("expected code classification, got %s", rendered.Classification)
	}
	if rendered.Truncated {
		testingHandle.Errorf("code files must not be truncated")
	}
	if !strings.Contains(rendered.Block, "line 100\n") {
		testingHandle.Errorf("expected middle lines to be present in full rendering")
	}
}

// TestRenderFileTextTruncation verifies the head/tail invariants: full output
// for L <= 2K, exactly K head lines, one marker, and K tail lines otherwise.
func TestRenderFileTextTruncation(testingHandle *testing.T) {
	const window = 50
	settings := config.NewSettings(nil, window)

	testCases := []struct {
		testName        string
		lineCount       int
		expectTruncated bool
		expectedOmitted int
	}{
		{testName: "below window", lineCount: 99, expectTruncated: false},
		{testName: "at window", lineCount: 100, expectTruncated: false},
		{testName: "just above window", lineCount: 101, expectTruncated: true, expectedOmitted: 1},
		{testName: "far above window", lineCount: 200, expectTruncated: true, expectedOmitted: 100},
	}
	for index, testCase := range testCases {
		entry := types.FileEntry{RelativePath: "notes.data"}
		rendered := render.RenderFile(entry, []byte(numberedLines(testCase.lineCount)), settings)
		if rendered.Classification != types.ClassificationText {
			testingHandle.Fatalf("case %d (%s): expected text classification, got %s", index, testCase.testName, rendered.Classification)
		}
		if rendered.Truncated != testCase.expectTruncated {
			testingHandle.Errorf("case %d (%s): expected truncated=%v", index, testCase.testName, testCase.expectTruncated)
			continue
		}
		if !testCase.expectTruncated {
			for lineNumber := 1; lineNumber <= testCase.lineCount; lineNumber++ {
				if !strings.Contains(rendered.Block, fmt.Sprintf("line %d\n", lineNumber)) {
					testingHandle.Errorf("case %d (%s): expected line %d in full rendering", index, testCase.testName, lineNumber)
					break
				}
			}
			continue
		}
		if rendered.OmittedLines != testCase.expectedOmitted {
			testingHandle.Errorf("case %d (%s): expected %d omitted lines, got %d", index, testCase.testName, testCase.expectedOmitted, rendered.OmittedLines)
		}
		marker := fmt.Sprintf("... [%d lines omitted] ...", testCase.expectedOmitted)
		if strings.Count(rendered.Block, marker) != 1 {
			testingHandle.Errorf("case %d (%s): expected exactly one elision marker %q", index, testCase.testName, marker)
		}
		if !strings.Contains(rendered.Block, fmt.Sprintf("line %d\n", window)) {
			testingHandle.Errorf("case %d (%s): expected head line %d", index, testCase.testName, window)
		}
		if strings.Contains(rendered.Block, fmt.Sprintf("line %d\n", window+1)) {
			testingHandle.Errorf("case %d (%s): did not expect elided line %d", index, testCase.testName, window+1)
		}
		if !strings.Contains(rendered.Block, fmt.Sprintf("line %d\n", testCase.lineCount-window+1)) {
			testingHandle.Errorf("case %d (%s): expected first tail line", index, testCase.testName)
		}
	}
}

// TestRenderFileTruncatedLineCount verifies the exact 2K+1 line invariant of
// a truncated fenced body.
func TestRenderFileTruncatedLineCount(testingHandle *testing.T) {
	const window = 5
	settings := config.NewSettings(nil, window)
	rendered := render.RenderFile(types.FileEntry{RelativePath: "big.data"}, []byte(numberedLines(40)), settings)
	if !rendered.Truncated {
		testingHandle.Fatalf("expected truncation for 40 lines with window 5")
	}

	blockLines := strings.Split(rendered.Block, "\n")
	fenceCount := 0
	contentLines := 0
	insideFence := false
	for _, blockLine := range blockLines {
		if strings.HasPrefix(blockLine, "```") {
			fenceCount++
			insideFence = !insideFence
			continue
		}
		if insideFence {
			contentLines++
		}
	}
	if fenceCount != 2 {
		testingHandle.Fatalf("expected one balanced fence pair, got %d fence lines", fenceCount)
	}
	if contentLines != 2*window+1 {
		testingHandle.Errorf("expected %d fenced lines (head+marker+tail), got %d", 2*window+1, contentLines)
	}
}

// TestRenderFileBinaryProducesNoBlock verifies binary content yields no block.
func TestRenderFileBinaryProducesNoBlock(testingHandle *testing.T) {
	settings := config.NewSettings(nil, 0)
	rendered := render.RenderFile(types.FileEntry{RelativePath: "image.bin"}, []byte{0x00, 0x01, 0x02}, settings)
	if rendered.Classification != types.ClassificationBinary {
		testingHandle.Fatalf("expected binary classification, got %s", rendered.Classification)
	}
	if rendered.Block != "" {
		testingHandle.Errorf("expected empty block for binary file, got %q", rendered.Block)
	}
}

// TestRenderFileEmptyContent verifies a zero-byte file renders as an empty
// fenced block rather than an omission.
func TestRenderFileEmptyContent(testingHandle *testing.T) {
	settings := config.NewSettings(nil, 0)
	rendered := render.RenderFile(types.FileEntry{RelativePath: "empty.txt"}, nil, settings)
	if rendered.Classification != types.ClassificationText {
		testingHandle.Fatalf("expected text classification, got %s", rendered.Classification)
	}
	if !strings.Contains(rendered.Block, "## empty.txt") {
		testingHandle.Errorf("expected path header in block")
	}
	if !strings.Contains(rendered.Block, "```markdown\n```\n") && !strings.Contains(rendered.Block, "```\n```\n") {
		testingHandle.Errorf("expected an empty fenced block, got %q", rendered.Block)
	}
}

// TestRenderFileFenceCollision verifies the fence is always longer than any
// backtick run inside the content.
func TestRenderFileFenceCollision(testingHandle *testing.T) {
	settings := config.NewSettings(nil, 0)
	content := "some text\n````\nnested fence\n````\n"
	rendered := render.RenderFile(types.FileEntry{RelativePath: "tricky.data"}, []byte(content), settings)
	if !strings.Contains(rendered.Block, "`````\n") {
		testingHandle.Errorf("expected a five-backtick fence, got %q", rendered.Block)
	}
	openings := strings.Count(rendered.Block, "`````")
	if openings < 2 {
		testingHandle.Errorf("expected balanced long fences, got %q", rendered.Block)
	}
}
