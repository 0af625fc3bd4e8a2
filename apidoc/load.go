package apidoc

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oacatalog/internal/options"
	"github.com/erraggy/oacatalog/oaserrors"
)

// DefaultMaxSize is the default limit on the size of a source document.
const DefaultMaxSize int64 = 32 << 20

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Result contains a decoded document and metadata about where it came from.
type Result struct {
	// Document is the decoded document.
	Document *Document
	// SourcePath is the file path the document was read from. For reader and
	// byte inputs it is "Load.json" or "Load.yaml" unless WithSourceName is used.
	SourcePath string
	// SourceFormat is the detected format of the source.
	SourceFormat SourceFormat
	// SourceSize is the size of the source in bytes.
	SourceSize int64
	// LoadTime is the time spent reading the source.
	LoadTime time.Duration
	// Stats holds document counts.
	Stats Stats
}

// Option is a function that configures a load operation
type Option func(*loadConfig) error

type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	maxSize    int64
	logger     Logger
	sourceName *string
}

// Load reads and decodes a document using functional options.
//
// Example:
//
//	result, err := apidoc.Load(
//	    apidoc.WithFilePath("openapi.json"),
//	    apidoc.WithMaxSize(8<<20),
//	)
func Load(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("apidoc: invalid options: %w", err)
	}
	log := cfg.logger

	var (
		data   []byte
		source string
		format SourceFormat
	)
	start := time.Now()
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		data, err = readFile(source, cfg.maxSize)
		format = detectFormatFromPath(source)
	case cfg.reader != nil:
		data, err = readLimited(cfg.reader, cfg.maxSize)
	default:
		data = cfg.bytes
		if int64(len(data)) > cfg.maxSize {
			err = sizeError(cfg.maxSize, int64(len(data)))
		}
	}
	loadTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("apidoc: %w", err)
	}

	if format == SourceFormatUnknown || format == "" {
		format = detectFormatFromContent(data)
	}
	if cfg.sourceName != nil {
		source = *cfg.sourceName
	} else if source == "" {
		source = "Load." + string(format)
	}

	doc, err := decodeDocument(data, source)
	if err != nil {
		log.Debug("document rejected", "source", source, "error", err)
		return nil, fmt.Errorf("apidoc: %w", err)
	}

	res := &Result{
		Document:     doc,
		SourcePath:   source,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		LoadTime:     loadTime,
		Stats:        doc.Stats(),
	}
	log.Debug("document loaded",
		"source", source,
		"format", format,
		"size", res.SourceSize,
		"paths", res.Stats.PathCount,
		"schemas", res.Stats.SchemaCount,
	)
	return res, nil
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		maxSize: DefaultMaxSize,
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a local file as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithMaxSize limits the number of bytes read from the source.
// Default: DefaultMaxSize (32 MiB)
func WithMaxSize(n int64) Option {
	return func(cfg *loadConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "max-size", Value: n, Message: "must be positive"}
		}
		cfg.maxSize = n
		return nil
	}
}

// WithLogger sets a structured logger. By default nothing is logged.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithSourceName overrides Result.SourcePath and the source named in errors.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, limit)
}

// readLimited reads at most limit bytes and fails if more are available.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	n := limit
	if n < math.MaxInt64 {
		n++
	}
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, sizeError(limit, 0)
	}
	return data, nil
}

func sizeError(limit, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "document_size",
		Limit:        limit,
		Actual:       actual,
	}
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON starts with '{' or '[', while YAML does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
