package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/catalog"
	"github.com/erraggy/oacatalog/internal/options"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// extraction is a cached catalog together with facts about its source.
type extraction struct {
	catalog    *catalog.Catalog
	stats      apidoc.Stats
	format     apidoc.SourceFormat
	sourceSize int64
}

// catalogCache is a session-scoped cache of extracted catalogs.
// File inputs are keyed by (absolutePath, modTime) and content inputs by a
// SHA-256 hash, each combined with the naming config's identity. Entries
// expire after a fixed TTL.
type catalogCache struct {
	lru *expirable.LRU[string, *extraction]
}

func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{lru: expirable.NewLRU[string, *extraction](size, nil, ttl)}
}

var specCache = newCatalogCache(cfg.CacheMaxSize, cfg.CacheTTL)

func (c *catalogCache) get(key string) *extraction {
	if e, ok := c.lru.Get(key); ok {
		return e
	}
	return nil
}

func (c *catalogCache) put(key string, e *extraction) {
	c.lru.Add(key, e)
}

// reset clears all cached entries. Used in tests.
func (c *catalogCache) reset() {
	c.lru.Purge()
}

// size returns the number of cached entries.
func (c *catalogCache) size() int {
	return c.lru.Len()
}

// fileKey identifies a file by absolute path and modification time, or
// returns "" when it cannot be stat'ed.
func fileKey(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", absPath, info.ModTime().UnixNano())
}

// makeCacheKey creates a cache key for the given input and naming config
// file. It returns "" when either cannot be identified.
func makeCacheKey(s specInput, configFile string) string {
	cfgKey := "default"
	if configFile != "" {
		if cfgKey = fileKey(configFile); cfgKey == "" {
			return ""
		}
	}
	var src string
	switch {
	case s.File != "":
		k := fileKey(s.File)
		if k == "" {
			return ""
		}
		src = "file:" + k
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		src = "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
	return fmt.Sprintf("%s|config:%s|nfc:%t", src, cfgKey, cfg.NormalizeUnicode)
}

// extract decodes the document and builds its catalog, consulting the cache
// first. configFile overrides OACATALOG_CONFIG when set.
func (s specInput) extract(configFile string) (*extraction, error) {
	if err := options.ValidateSingleInputSource(
		"exactly one of file or content must be provided (got 0)",
		"exactly one of file or content must be provided (got 2)",
		s.File != "", s.Content != "",
	); err != nil {
		return nil, err
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OACATALOG_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	if configFile == "" {
		configFile = cfg.ConfigFile
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s, configFile)
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	namingCfg := catalog.DefaultConfig()
	if configFile != "" {
		var err error
		if namingCfg, err = catalog.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}
	x, err := catalog.New(namingCfg, catalog.WithUnicodeNormalization(cfg.NormalizeUnicode))
	if err != nil {
		return nil, err
	}

	var opt apidoc.Option
	if s.File != "" {
		opt = apidoc.WithFilePath(s.File)
	} else {
		opt = apidoc.WithReader(strings.NewReader(s.Content))
	}
	result, err := apidoc.Load(opt)
	if err != nil {
		return nil, err
	}

	e := &extraction{
		catalog:    x.Extract(result.Document),
		stats:      result.Stats,
		format:     result.SourceFormat,
		sourceSize: result.SourceSize,
	}
	if key != "" {
		specCache.put(key, e)
	}
	return e, nil
}
