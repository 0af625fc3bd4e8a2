package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOACATALOGEnv clears all OACATALOG_* env vars to isolate tests from the ambient environment.
func clearOACATALOGEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OACATALOG_CACHE_ENABLED", "OACATALOG_CACHE_SIZE", "OACATALOG_CACHE_TTL",
		"OACATALOG_MAX_INLINE_SIZE", "OACATALOG_CONFIG", "OACATALOG_NORMALIZE_UNICODE",
		"OACATALOG_LIST_LIMIT", "OACATALOG_MAX_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOACATALOGEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 16, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Empty(t, c.ConfigFile)
	assert.False(t, c.NormalizeUnicode)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOACATALOGEnv(t)
	t.Setenv("OACATALOG_CACHE_ENABLED", "false")
	t.Setenv("OACATALOG_CACHE_SIZE", "4")
	t.Setenv("OACATALOG_CACHE_TTL", "30s")
	t.Setenv("OACATALOG_MAX_INLINE_SIZE", "2048")
	t.Setenv("OACATALOG_CONFIG", "/etc/oacatalog/naming.yaml")
	t.Setenv("OACATALOG_NORMALIZE_UNICODE", "true")
	t.Setenv("OACATALOG_LIST_LIMIT", "20")
	t.Setenv("OACATALOG_MAX_LIMIT", "200")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 4, c.CacheMaxSize)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, "/etc/oacatalog/naming.yaml", c.ConfigFile)
	assert.True(t, c.NormalizeUnicode)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 200, c.MaxLimit)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearOACATALOGEnv(t)
	t.Setenv("OACATALOG_CACHE_ENABLED", "maybe")
	t.Setenv("OACATALOG_CACHE_SIZE", "-1")
	t.Setenv("OACATALOG_CACHE_TTL", "soon")
	t.Setenv("OACATALOG_MAX_INLINE_SIZE", "0")
	t.Setenv("OACATALOG_LIST_LIMIT", "ten")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 16, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 100, c.ListLimit)
}
