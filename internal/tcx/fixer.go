// internal/tcx/fixer.go
package tcx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Failure classes for the file-level transform. Callers match with errors.Is
// and turn them into exit codes or HTTP statuses.
var (
	ErrFileNotFound     = errors.New("input file not found")
	ErrUnreadableFile   = errors.New("input file not readable")
	ErrMalformedXML     = errors.New("malformed TCX document")
	ErrUnwritableOutput = errors.New("cannot write output file")
)

// DefaultOutputPath returns the cleaned-file path used when the caller does
// not pick one: the input name with a _fixed suffix, next to the input. The
// input is never silently overwritten.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".tcx"
	}
	return stem + "_fixed" + ext
}

// FixFile reads a TCX file, cleans it, and writes the result. An empty
// outputPath selects DefaultOutputPath. The output is written to a temporary
// file and renamed into place, so a failure never leaves a half-written
// file behind. Returns the path actually written.
func FixFile(inputPath, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return "", fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	cleaned, err := Clean(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	if err := writeAtomic(outputPath, cleaned); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnwritableOutput, err)
	}
	return outputPath, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tcxclean-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
