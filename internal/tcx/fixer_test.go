// internal/tcx/fixer_test.go
package tcx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"ride.tcx":          "ride_fixed.tcx",
		"dir/morning.tcx":   "dir/morning_fixed.tcx",
		"export.TCX":        "export_fixed.TCX",
		"noextension":       "noextension_fixed.tcx",
		"/abs/path/a.b.tcx": "/abs/path/a.b_fixed.tcx",
	}
	for input, want := range cases {
		if got := DefaultOutputPath(input); got != want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFixFileDefaultOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "ride.tcx")
	if err := os.WriteFile(input, []byte(dirtyExport), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := FixFile(input, "")
	if err != nil {
		t.Fatalf("FixFile failed: %v", err)
	}
	if want := filepath.Join(dir, "ride_fixed.tcx"); output != want {
		t.Errorf("FixFile wrote to %q, want %q", output, want)
	}

	// The input must be untouched.
	original, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if string(original) != dirtyExport {
		t.Error("FixFile modified the input file")
	}

	cleaned, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("cleaned file not readable: %v", err)
	}
	if len(cleaned) == 0 {
		t.Fatal("cleaned file is empty")
	}
}

func TestFixFileExplicitInPlace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "ride.tcx")
	if err := os.WriteFile(input, []byte(dirtyExport), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := FixFile(input, input); err != nil {
		t.Fatalf("FixFile failed: %v", err)
	}

	want, err := Clean([]byte(dirtyExport))
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("in-place fix did not produce the cleaned document")
	}
}

func TestFixFileNotFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "missing.tcx")
	if _, err := FixFile(input, ""); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("FixFile on missing input = %v, want ErrFileNotFound", err)
	}

	// No output file may be created.
	if _, err := os.Stat(DefaultOutputPath(input)); !os.IsNotExist(err) {
		t.Error("FixFile created an output file for a missing input")
	}
}

func TestFixFileMalformedInput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "broken.tcx")
	if err := os.WriteFile(input, []byte("<TrainingCenter"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := FixFile(input, ""); !errors.Is(err, ErrMalformedXML) {
		t.Errorf("FixFile on broken XML = %v, want ErrMalformedXML", err)
	}
	if _, err := os.Stat(DefaultOutputPath(input)); !os.IsNotExist(err) {
		t.Error("FixFile left an output file behind after a parse failure")
	}
}

func TestFixFileUnwritableOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "ride.tcx")
	if err := os.WriteFile(input, []byte(dirtyExport), 0644); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "no-such-dir", "ride.tcx")
	if _, err := FixFile(input, output); !errors.Is(err, ErrUnwritableOutput) {
		t.Errorf("FixFile into missing directory = %v, want ErrUnwritableOutput", err)
	}
}

func TestFixFileLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := filepath.Join(dir, "ride.tcx")
	if err := os.WriteFile(input, []byte(dirtyExport), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := FixFile(input, ""); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "ride.tcx" && e.Name() != "ride_fixed.tcx" {
			t.Errorf("unexpected file left in output directory: %s", e.Name())
		}
	}
}
