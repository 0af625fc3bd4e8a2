package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/erraggy/oacatalog"
	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/catalog"
	"github.com/erraggy/oacatalog/oaserrors"
)

// ExtractFlags contains flags for the extract command
type ExtractFlags struct {
	Config           string
	Format           string
	Output           string
	RequireVersion   string
	MaxSize          int64
	NormalizeUnicode bool
	Quiet            bool
	Debug            bool
}

// SetupExtractFlags creates and configures a FlagSet for the extract command.
// Returns the FlagSet and an ExtractFlags struct with bound flag variables.
func SetupExtractFlags() (*flag.FlagSet, *ExtractFlags) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	flags := &ExtractFlags{}

	fs.StringVar(&flags.Config, "config", "", "naming configuration file (YAML or JSON); defaults to $"+ConfigEnvVar)
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json, yaml, table, or keys")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.RequireVersion, "require-version", "", "fail unless info.version satisfies this constraint (e.g. \">= 2.0, < 3.0\")")
	fs.Int64Var(&flags.MaxSize, "max-size", apidoc.DefaultMaxSize, "maximum document size in bytes")
	fs.BoolVar(&flags.NormalizeUnicode, "normalize-unicode", false, "match $ref schema names under Unicode NFC normalization")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the catalog, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the catalog, no diagnostic messages")
	fs.BoolVar(&flags.Debug, "debug", false, "log skipped paths and unresolved references to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oacatalog extract [flags] <file|->\n\n")
		Writef(output, "Derive the API catalog from an OpenAPI document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oacatalog extract openapi.json\n")
		Writef(output, "  oacatalog extract --format table openapi.yaml\n")
		Writef(output, "  oacatalog extract --config naming.yaml -o catalog.json openapi.json\n")
		Writef(output, "  oacatalog extract --require-version '~> 2.4' openapi.json\n")
		Writef(output, "  curl -s https://example.com/v3/api-docs | oacatalog extract -q --format keys -\n")
		Writef(output, "\nEnvironment:\n")
		Writef(output, "  %s    default for --config (also read from .env)\n", ConfigEnvVar)
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Catalog written\n")
		Writef(output, "  1    The document could not be read or decoded, or a flag was invalid\n")
	}

	return fs, flags
}

// HandleExtract executes the extract command
func HandleExtract(args []string) error {
	fs, flags := SetupExtractFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("extract command requires exactly one file path or '-' for stdin")
	}

	return runExtract(flags, fs.Arg(0), os.Stdin, os.Stdout, os.Stderr)
}

func runExtract(flags *ExtractFlags, specPath string, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	cfg, cfgPath, err := ResolveConfig(flags.Config)
	if err != nil {
		return err
	}
	logger := NewLogger(flags.Debug, stderr)

	opts := []apidoc.Option{
		apidoc.WithMaxSize(flags.MaxSize),
		apidoc.WithLogger(logger),
	}
	if specPath == StdinFilePath {
		opts = append(opts, apidoc.WithReader(stdin), apidoc.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, apidoc.WithFilePath(specPath))
	}

	startTime := time.Now()
	result, err := apidoc.Load(opts...)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	if flags.RequireVersion != "" {
		if err := CheckVersion(result.Document.APIVersion, flags.RequireVersion); err != nil {
			return err
		}
	}

	x, err := catalog.New(cfg,
		catalog.WithLogger(logger),
		catalog.WithUnicodeNormalization(flags.NormalizeUnicode),
	)
	if err != nil {
		return err
	}
	cat := x.Extract(result.Document)
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		Writef(stderr, "OpenAPI Catalog Extractor\n")
		Writef(stderr, "=========================\n\n")
		Writef(stderr, "oacatalog version: %s\n", oacatalog.Version())
		Writef(stderr, "Specification: %s\n", FormatSpecPath(specPath))
		if cfgPath != "" {
			Writef(stderr, "Config: %s\n", cfgPath)
		}
		Writef(stderr, "API Version: %s\n", cat.APIVersion)
		Writef(stderr, "Source Size: %s\n", apidoc.FormatBytes(result.SourceSize))
		Writef(stderr, "Paths: %d\n", result.Stats.PathCount)
		Writef(stderr, "APIs: %d (%d skipped)\n", len(cat.API), result.Stats.PathCount-len(cat.API))
		Writef(stderr, "Keys: %d\n", len(cat.APIKeyList))
		Writef(stderr, "Total Time: %v\n\n", totalTime)
	}

	if flags.Output == "" {
		return RenderCatalog(stdout, cat, flags.Format)
	}

	cleaned := filepath.Clean(flags.Output)
	if err := ValidateOutputPath(stderr, cleaned, []string{specPath}); err != nil {
		return err
	}
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := RenderCatalog(&buf, cat, flags.Format); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !flags.Quiet {
		Writef(stderr, "Output written to: %s\n", cleaned)
	}
	return nil
}

// CheckVersion reports whether apiVersion satisfies constraint, using
// hashicorp/go-version constraint syntax.
func CheckVersion(apiVersion, constraint string) error {
	c, err := version.NewConstraint(constraint)
	if err != nil {
		return &oaserrors.ConfigError{Option: "require-version", Value: constraint, Message: "invalid version constraint", Cause: err}
	}
	v, err := version.NewVersion(apiVersion)
	if err != nil {
		return &oaserrors.ValidationError{Field: "info.version", Value: apiVersion, Message: "not a semantic version", Cause: err}
	}
	if !c.Check(v) {
		return &oaserrors.ValidationError{
			Field:   "info.version",
			Value:   apiVersion,
			Message: fmt.Sprintf("does not satisfy %q", constraint),
		}
	}
	return nil
}
