package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atarasenko/shortlink/internal/config"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		opts := config.Parse()
		require.Equal(t, ":3000", opts.Addr)
		require.Equal(t, "http://localhost:3000", opts.BaseURL)
		require.Equal(t, "", opts.DatabaseDSN)
		require.Equal(t, "", opts.RedisAddr)
		require.Equal(t, "", opts.FilePath)
		require.Equal(t, "info", opts.LogLevel)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
	})

	t.Run("env overrides", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
		os.Setenv("BASE_URL", "http://example.com")
		os.Setenv("DATABASE_DSN", "postgres://test")
		os.Setenv("REDIS_ADDR", "localhost:6379")
		os.Setenv("FILE_STORAGE_PATH", "/tmp/data")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("ENABLE_HTTPS", "true")
		os.Setenv("TLS_HOST", "example.com")

		opts := config.Parse()
		require.Equal(t, "127.0.0.1:9999", opts.Addr)
		require.Equal(t, "http://example.com", opts.BaseURL)
		require.Equal(t, "postgres://test", opts.DatabaseDSN)
		require.Equal(t, "localhost:6379", opts.RedisAddr)
		require.Equal(t, "/tmp/data", opts.FilePath)
		require.Equal(t, "debug", opts.LogLevel)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "example.com", opts.TLSHost)
	})

	t.Run("PORT fallback", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PORT", "8081")

		opts := config.Parse()
		require.Equal(t, ":8081", opts.Addr)
	})
}
