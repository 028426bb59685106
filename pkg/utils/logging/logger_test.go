package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_WritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, err := InitLogger(Options{Env: "test", Dir: dir, Console: &console})
	require.NoError(t, err)

	logger.Info("Roster generated", zap.Int("assignments", 3))
	logger.Debug("Assigned staff", zap.String("staff_id", "alice"))
	_ = logger.Sync()

	// Debug is file-only
	assert.Contains(t, console.String(), "Roster generated")
	assert.NotContains(t, console.String(), "Assigned staff")

	data, err := os.ReadFile(filepath.Join(dir, "test_rota.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Roster generated"`)
	assert.Contains(t, string(data), `"staff_id":"alice"`)
}

func TestInitLogger_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, err := InitLogger(Options{Env: "test", Dir: dir, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
