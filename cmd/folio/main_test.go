package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel(""))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLogFileWriterTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "folio.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	w.maxSize = 64
	w.keep = 16

	_, err = w.Write(bytes.Repeat([]byte("a"), 60))
	require.NoError(t, err)
	_, err = w.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdef", string(data))
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	require.NoError(t, ensureDBDir("folio.db"))

	path := filepath.Join(t.TempDir(), "nested", "folio.db")
	require.NoError(t, ensureDBDir(path))
	_, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestExportCommandWritesDefaults(t *testing.T) {
	t.Setenv("FOLIO_STORAGE_DRIVER", "memory")
	t.Setenv("FOLIO_CONFIG_PATH", "")
	out := filepath.Join(t.TempDir(), "defaults.yaml")

	rootCmd.SetArgs([]string{"export", "--out", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "projects:")
	require.Contains(t, string(data), "contactInfo:")
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Setenv("FOLIO_STORAGE_DRIVER", "memory")
	resetYes = false
	rootCmd.SetArgs([]string{"reset"})
	require.Error(t, rootCmd.Execute())
}
