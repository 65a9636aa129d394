package lineio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "line one\r\nline two\n\nline four\n"

func collect(t *testing.T, path string) []string {
	t.Helper()
	var lines []string
	err := ScanFile(path, func(_ int, line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	return lines
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestScanFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	assert.Equal(t, []string{"line one", "line two", "", "line four"}, collect(t, path))
}

func TestScanFile_GzipBySuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt.gz")
	writeGzip(t, path, sample)

	assert.Equal(t, []string{"line one", "line two", "", "line four"}, collect(t, path))
}

func TestScanFile_GzipByMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bed")
	writeGzip(t, path, sample)

	assert.Len(t, collect(t, path), 4)
}

func TestScan_LineNumbersAndStop(t *testing.T) {
	stop := errors.New("stop")
	var nums []int
	err := Scan(strings.NewReader(sample), func(n int, _ string) error {
		nums = append(nums, n)
		if n == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{1, 2}, nums)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
