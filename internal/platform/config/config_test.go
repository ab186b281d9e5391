package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"NAMEPLATE_ADDR", "LOG_LEVEL", "LOG_FORMAT", "DEFAULT_CHAIN_ID", "CHAINS_DIR",
		"CACHE_TTL", "CACHE_CAPACITY", "SOURCE_TIMEOUT", "RESOLVE_TIMEOUT",
		"IPFS_GATEWAY", "EAS_REQUESTS_PER_SECOND", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, uint64(DefaultChainID), cfg.DefaultChainID)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)
	assert.Equal(t, DefaultResolveTimeout, cfg.ResolveTimeout)
	assert.Equal(t, DefaultIPFSGateway, cfg.IPFSGateway)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NAMEPLATE_ADDR", ":9090")
	t.Setenv("DEFAULT_CHAIN_ID", "8453")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RESOLVE_TIMEOUT", "3s")
	t.Setenv("EAS_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_POOL_SIZE", "4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, uint64(8453), cfg.DefaultChainID)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.ResolveTimeout)
	assert.InDelta(t, 2.5, cfg.EASRequestsPerSecond, 0.0001)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 4, cfg.Redis.PoolSize)
}

func TestFromEnv_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_CHAIN_ID":        "0",
		"CACHE_TTL":               "soon",
		"SOURCE_TIMEOUT":          "-1s",
		"CACHE_CAPACITY":          "many",
		"EAS_REQUESTS_PER_SECOND": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
