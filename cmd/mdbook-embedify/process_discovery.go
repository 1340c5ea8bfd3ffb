package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/fileutil"
)

// stdinPath names standard input among the process arguments.
const stdinPath = "-"

// FileToProcess represents a single file to rewrite.
// An empty OutputPath means standard output.
type FileToProcess struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs into files to process. Directories are
// walked for Markdown files; their outputs mirror the tree under outputDir.
func discoverFiles(inputs []string, outputDir string, inPlace bool) ([]FileToProcess, error) {
	var files []FileToProcess
	for _, input := range inputs {
		found, err := discoverInput(input, outputDir, inPlace)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// discoverInput expands a single argument.
func discoverInput(inputPath, outputDir string, inPlace bool) ([]FileToProcess, error) {
	if inputPath == stdinPath {
		if inPlace {
			return nil, fmt.Errorf("%w: cannot rewrite standard input in place", ErrUsage)
		}
		return []FileToProcess{{InputPath: stdinPath, OutputPath: resolveOutputPath(stdinPath, outputDir, "", false)}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", inPlace)
		return []FileToProcess{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToProcess
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, inPlace)
		files = append(files, FileToProcess{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines where a processed file is written.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, inPlace bool) string {
	if inPlace {
		return inputPath
	}
	if outputDir == "" {
		return ""
	}

	// A Markdown output path names a single file, not a directory.
	if fileutil.IsMarkdown(outputDir) {
		return outputDir
	}

	if inputPath == stdinPath {
		return filepath.Join(outputDir, "stdin.md")
	}

	base := filepath.Base(inputPath)
	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, relPath)
		}
	}
	return filepath.Join(outputDir, base)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > embedify.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, embedify.MaxWorkers)
	}
	return nil
}

// validateOutputs rejects runs where several inputs would collide on one
// output: stdout, or a single Markdown output file.
func validateOutputs(files []FileToProcess) error {
	if len(files) < 2 {
		return nil
	}
	seen := make(map[string]string, len(files))
	for _, f := range files {
		key := f.OutputPath
		if key == "" {
			return fmt.Errorf("%w: %d files would all go to stdout; use --output <dir> or --in-place", ErrUsage, len(files))
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, f.InputPath, key)
		}
		seen[key] = f.InputPath
	}
	return nil
}
