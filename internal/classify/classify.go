// Package classify decides how a file's content is rendered into the document.
package classify

import (
	"strings"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// binaryMimePrefixes lists MIME type families always treated as binary.
var binaryMimePrefixes = []string{"image/", "audio/", "video/", "font/"}

// binaryMimeTypes lists exact MIME types always treated as binary.
var binaryMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"application/zip": {},
}

// Result captures the classification decision for one file.
type Result struct {
	Classification types.Classification
	// FenceLanguage is the Markdown fence language hint, possibly empty.
	FenceLanguage string
}

// Classify determines the rendering policy for a file from its name and content.
// Content sniffing takes precedence over the extension allow-list: a file
// containing a null byte or undecodable bytes is binary even when its
// extension marks it as code, so corrupted sources never leak raw bytes
// into the document. Zero-byte files are text with empty content.
func Classify(fileName string, content []byte, settings config.Settings) Result {
	if len(content) == 0 {
		return Result{
			Classification: types.ClassificationText,
			FenceLanguage:  settings.FenceLanguage(fileName),
		}
	}
	if utils.IsBinary(content) || hasBinaryMimeType(content) {
		return Result{Classification: types.ClassificationBinary}
	}
	if settings.IsCodeExtension(fileName) {
		return Result{
			Classification: types.ClassificationCode,
			FenceLanguage:  settings.FenceLanguage(fileName),
		}
	}
	return Result{
		Classification: types.ClassificationText,
		FenceLanguage:  settings.FenceLanguage(fileName),
	}
}

// hasBinaryMimeType reports whether content sniffing yields a MIME type that
// marks the file as binary regardless of byte-level checks.
func hasBinaryMimeType(content []byte) bool {
	mimeType := utils.DetectMimeTypeFromBytes(content)
	if mimeType == "" {
		return false
	}
	if semicolonIndex := strings.Index(mimeType, ";"); semicolonIndex >= 0 {
		mimeType = strings.TrimSpace(mimeType[:semicolonIndex])
	}
	if _, listed := binaryMimeTypes[mimeType]; listed {
		return true
	}
	for _, prefix := range binaryMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}
