package main

// Notes:
// - discoverFiles: we test single files, directory walks, stdin, and the
//   in-place flag. Extension filtering is case-insensitive.
// - resolveOutputPath: we test stdout, file, directory, and mirrored paths.

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		inPlace   bool
		want      string
	}{
		{"stdout by default", "docs/a.md", "", "", false, ""},
		{"in place", "docs/a.md", "", "", true, "docs/a.md"},
		{"into directory", "docs/a.md", "out", "", false, filepath.Join("out", "a.md")},
		{"explicit file", "docs/a.md", "result.md", "", false, "result.md"},
		{"mirrors tree", filepath.Join("docs", "sub", "a.md"), "out", "docs", false, filepath.Join("out", "sub", "a.md")},
		{"stdin into directory", stdinPath, "out", "", false, filepath.Join("out", "stdin.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir, tt.inPlace)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	writeFile(t, filepath.Join(dir, "B.MD"), "b")
	writeFile(t, filepath.Join(dir, "nested", "c.markdown"), "c")
	writeFile(t, filepath.Join(dir, "skip.txt"), "x")

	t.Run("directory walk", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles([]string{dir}, "out", false)
		if err != nil {
			t.Fatalf("discoverFiles() error: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("got %d files, want 3: %+v", len(files), files)
		}
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.InputPath)
			if want := filepath.Join("out", rel); f.OutputPath != want {
				t.Errorf("%s -> %s, want %s", f.InputPath, f.OutputPath, want)
			}
		}
	})

	t.Run("in place keeps paths", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles([]string{filepath.Join(dir, "a.md")}, "", true)
		if err != nil {
			t.Fatalf("discoverFiles() error: %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != files[0].InputPath {
			t.Errorf("files = %+v", files)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles([]string{stdinPath}, "", false)
		if err != nil {
			t.Fatalf("discoverFiles() error: %v", err)
		}
		if len(files) != 1 || files[0].InputPath != stdinPath || files[0].OutputPath != "" {
			t.Errorf("files = %+v", files)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		if _, err := discoverFiles([]string{filepath.Join(dir, "skip.txt")}, "", false); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
		if _, err := discoverFiles([]string{filepath.Join(dir, "missing.md")}, "", false); !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
		if _, err := discoverFiles([]string{stdinPath}, "", true); !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})
}

func TestValidateOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   []FileToProcess
		wantErr bool
	}{
		{"single to stdout", []FileToProcess{{InputPath: "a.md"}}, false},
		{"many to stdout", []FileToProcess{{InputPath: "a.md"}, {InputPath: "b.md"}}, true},
		{"distinct files", []FileToProcess{{"a.md", "o/a.md"}, {"b.md", "o/b.md"}}, false},
		{"collision", []FileToProcess{{"a.md", "out.md"}, {"b.md", "out.md"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateOutputs(tt.files)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOutputs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUsage) {
				t.Errorf("error = %v, want ErrUsage", err)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 256} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error: %v", n, err)
		}
	}
	for _, n := range []int{-1, 257} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
