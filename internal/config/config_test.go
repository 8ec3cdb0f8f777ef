package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir keeps a stray catalog.yaml in the package directory from
// leaking into the tests.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20.0, cfg.API.RateLimit)
	assert.Equal(t, 40, cfg.API.Burst)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.SearchDebounce)
	assert.Equal(t, 10, cfg.UI.ItemsPerPage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Empty(t, cfg.Server.DatabaseURL)
	assert.Empty(t, cfg.Server.RedisAddr)
}

func TestLoad_PrecedenceFileEnvFlag(t *testing.T) {
	dir := inTempDir(t)
	yaml := `
api:
  baseURL: http://file.example:9000
  timeout: 3s
ui:
  itemsPerPage: 20
  searchDebounce: 150ms
server:
  cacheTTL: 1m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(yaml), 0o600))

	t.Setenv("CATALOG_API_TIMEOUT", "7s")
	t.Setenv("CATALOG_SERVER_REDISADDR", "localhost:6379")

	v := NewViper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("items-per-page", 10, "")
	require.NoError(t, v.BindPFlag(KeyUIItemsPerPage, flags.Lookup("items-per-page")))
	require.NoError(t, flags.Parse([]string{"--items-per-page=50"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "http://file.example:9000", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout, "env beats file")
	assert.Equal(t, 50, cfg.UI.ItemsPerPage, "flag beats file")
	assert.Equal(t, 150*time.Millisecond, cfg.UI.SearchDebounce)
	assert.Equal(t, time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.Server.RedisAddr)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(NewViper(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_API_TOKEN=from-dotenv\n"), 0o600))
	t.Setenv("CATALOG_API_TOKEN", "")
	require.NoError(t, os.Unsetenv("CATALOG_API_TOKEN"))

	LoadDotEnv()
	t.Cleanup(func() { _ = os.Unsetenv("CATALOG_API_TOKEN") })

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.API.Token)
}

func TestValidate(t *testing.T) {
	inTempDir(t)
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	bad := cfg
	bad.API.BaseURL = "localhost:8080"
	bad.UI.ItemsPerPage = 0
	bad.API.Timeout = 0

	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyAPIBaseURL)
	assert.Contains(t, err.Error(), KeyUIItemsPerPage)
	assert.Contains(t, err.Error(), KeyAPITimeout)
}
