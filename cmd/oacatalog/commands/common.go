// Package commands provides CLI command handlers for oacatalog.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/catalog"
)

// Output format constants
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
	FormatKeys  = "keys"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ConfigEnvVar names the environment variable that supplies a default for
// --config.
const ConfigEnvVar = "OACATALOG_CONFIG"

var validFormats = []string{FormatJSON, FormatYAML, FormatTable, FormatKeys}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s, %s", format, FormatJSON, FormatYAML, FormatTable, FormatKeys)
	}
	return nil
}

// ResolveConfig loads the naming configuration from path, falling back to
// $OACATALOG_CONFIG and then to the built-in defaults.
func ResolveConfig(path string) (catalog.Config, string, error) {
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path == "" {
		return catalog.DefaultConfig(), "", nil
	}
	cfg, err := catalog.LoadConfig(path)
	if err != nil {
		return catalog.Config{}, path, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, path, nil
}

// NewLogger returns a debug-level slog text logger writing to w when debug is
// set, and a no-op logger otherwise.
func NewLogger(debug bool, w io.Writer) apidoc.Logger {
	if !debug {
		return apidoc.NopLogger{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return apidoc.NewSlogAdapter(slog.New(handler))
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(stderr io.Writer, outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Existing output is overwritten, with a warning.
	if _, err := os.Stat(outputPath); err == nil {
		Writef(stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the input document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
