package diskinfo

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySizeSumsRegularFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b"), make([]byte, 28), 0o644))

	size, err := DirectorySize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(128), size)
}

func TestDirectorySizeEmptyDir(t *testing.T) {
	size, err := DirectorySize(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestDirectorySizeMissingPath(t *testing.T) {
	_, err := DirectorySize(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestReport(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("vault"), 0o644))

	require.NoError(t, Report(log, dir))
}

func TestReportMissingPath(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	err := Report(log, filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
