// internal/parser/detector.go
package parser

import (
	"bytes"
	"os"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeTCX     FileType = "tcx"
	FileTypeGPX     FileType = "gpx"
	FileTypeUnknown FileType = "unknown"
)

// DetectFile sniffs the first 512 bytes of a file.
func DetectFile(path string) (FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileTypeUnknown, err
	}
	defer file.Close()

	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && n == 0 {
		return FileTypeUnknown, err
	}

	return DetectFromData(header[:n]), nil
}

// DetectFromData classifies activity file content by signature.
func DetectFromData(data []byte) FileType {
	// FIT header carries a ".FIT" tag at offset 8
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	probe = bytes.TrimSpace(probe)

	if bytes.HasPrefix(probe, []byte("<?xml")) || bytes.HasPrefix(probe, []byte("<")) {
		if bytes.Contains(probe, []byte("<gpx")) ||
			bytes.Contains(probe, []byte("topografix.com/GPX")) {
			return FileTypeGPX
		}
		if bytes.Contains(probe, []byte("TrainingCenterDatabase")) {
			return FileTypeTCX
		}
	}

	return FileTypeUnknown
}
