package utils

import (
	"fmt"
	"strings"
)

const sizeUnitStep = 1024

// sizeUnits are the labels used by the document metadata's total-size line.
var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count the way the document metadata reports
// it: whole bytes below one kilobyte, at most one decimal place above.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	if sizeBytes < sizeUnitStep {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	scaled := float64(sizeBytes) / sizeUnitStep
	unitIndex := 0
	for scaled >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		scaled /= sizeUnitStep
		unitIndex++
	}
	formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", scaled), ".0")
	return formatted + " " + sizeUnits[unitIndex]
}
