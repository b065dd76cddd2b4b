package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err = tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jdk.zip")
	writeZip(t, archive, map[string]string{
		"jdk-17.0.5+8/bin/java":    "binary",
		"jdk-17.0.5+8/release":     "JAVA_VERSION=17.0.5",
		"jdk-17.0.5+8/lib/modules": "data",
	})

	dest := t.TempDir()
	root, err := ExtractArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "jdk-17.0.5+8"), root)

	data, err := os.ReadFile(filepath.Join(root, "release"))
	require.NoError(t, err)
	assert.Equal(t, "JAVA_VERSION=17.0.5", string(data))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jdk.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"jdk-21.0.1+12/bin/java": "binary",
		"jdk-21.0.1+12/release":  "JAVA_VERSION=21.0.1",
	})

	dest := t.TempDir()
	root, err := ExtractArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "jdk-21.0.1+12"), root)

	_, err = os.Stat(filepath.Join(root, "bin", "java"))
	assert.NoError(t, err)
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"../outside": "nope",
	})

	_, err := ExtractArchive(archive, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal archive entry")
}

// writeTarGzLink builds an archive with a symlink entry followed by a
// regular file whose path traverses the link.
func writeTarGzLink(t *testing.T, path, linkname string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "jdk/lib",
		Mode:     0o777,
		Typeflag: tar.TypeSymlink,
		Linkname: linkname,
	}))
	content := "payload"
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "jdk/lib/planted.txt",
		Mode:     0o644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err = tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestExtractRejectsAbsoluteSymlinkTarget(t *testing.T) {
	outside := t.TempDir()
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeTarGzLink(t, archive, outside)

	_, err := ExtractArchive(archive, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal archive symlink target")
	assert.NoFileExists(t, filepath.Join(outside, "planted.txt"))
}

func TestExtractRejectsRelativeSymlinkEscape(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeTarGzLink(t, archive, "../../../somewhere")

	dest := t.TempDir()
	_, err := ExtractArchive(archive, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal archive symlink target")
	assert.NoFileExists(t, filepath.Join(dest, "jdk", "lib"))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "jdk.rar")
	require.NoError(t, os.WriteFile(archive, []byte("data"), 0o644))

	_, err := ExtractArchive(archive, t.TempDir())
	assert.Error(t, err)
}

func TestVerifyChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	content := []byte("jdk archive bytes")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := sha256.Sum256(content)
	good := hex.EncodeToString(sum[:])

	assert.NoError(t, VerifyChecksum(path, good))
	// Hex digests compare case-insensitively.
	assert.NoError(t, VerifyChecksum(path, strings.ToUpper(good)))

	err := VerifyChecksum(path, "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.00 KB", FormatSize(1024))
	assert.Equal(t, "190.73 MB", FormatSize(200000000))
}
