// Package sink delivers the assembled document to its destination.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/promptpack/promptpack/internal/services/clipboard"
)

const (
	outputFileMode = 0o644

	writeFileErrorFormat     = "writing document to %s: %w"
	clipboardCopiedMessage   = "Document copied to clipboard."
	clipboardFailedFormat    = "clipboard delivery failed (%v); printing document to stdout"
	documentWrittenFormat    = "Document written to %s."
	stdoutWriteErrorFormat   = "writing document to stdout: %w"
	clipboardFallbackDivider = "--- document ---"
)

// Reporter receives human-facing delivery notices. The CLI passes the
// application logger; tests pass a recorder.
type Reporter interface {
	Info(message string)
	Warn(message string)
}

// Sink delivers a fully assembled document.
type Sink struct {
	copier clipboard.Copier
	stdout io.Writer
	report Reporter
}

// New constructs a Sink around the provided clipboard copier and stdout writer.
func New(copier clipboard.Copier, stdout io.Writer, report Reporter) *Sink {
	return &Sink{copier: copier, stdout: stdout, report: report}
}

// WriteFile persists the document to outputPath, creating or overwriting it.
// A file-sink failure is fatal to the run.
func (deliverySink *Sink) WriteFile(document string, outputPath string) error {
	if writeError := os.WriteFile(outputPath, []byte(document), outputFileMode); writeError != nil {
		return fmt.Errorf(writeFileErrorFormat, outputPath, writeError)
	}
	deliverySink.report.Info(fmt.Sprintf(documentWrittenFormat, outputPath))
	return nil
}

// CopyToClipboard delivers the document to the system clipboard. Clipboard
// failure is a degraded condition, not an error: the document is printed to
// stdout instead and the run still succeeds.
func (deliverySink *Sink) CopyToClipboard(document string) error {
	copyError := deliverySink.copier.Copy(document)
	if copyError == nil {
		deliverySink.report.Info(clipboardCopiedMessage)
		return nil
	}
	deliverySink.report.Warn(fmt.Sprintf(clipboardFailedFormat, copyError))
	deliverySink.report.Warn(clipboardFallbackDivider)
	return deliverySink.Print(document)
}

// Print writes the document to stdout.
func (deliverySink *Sink) Print(document string) error {
	if _, writeError := io.WriteString(deliverySink.stdout, document); writeError != nil {
		return fmt.Errorf(stdoutWriteErrorFormat, writeError)
	}
	return nil
}
