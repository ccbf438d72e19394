package utils

import (
	"net/http"
)

// DetectMimeTypeFromBytes returns the MIME type detected from the provided
// content. At most sniffLength bytes are sniffed.
func DetectMimeTypeFromBytes(data []byte) string {
	sample := data
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	return http.DetectContentType(sample)
}
