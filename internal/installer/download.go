package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DownloadFile downloads url into destPath with an animated progress bar.
func DownloadFile(url string, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	totalSize := resp.ContentLength

	p := tea.NewProgram(NewProgressModel(totalSize))
	pw := newProgressWriter(totalSize, p)

	go func() {
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running progress: %v\n", err)
		}
	}()

	// Give the UI a moment to start
	time.Sleep(100 * time.Millisecond)

	written, err := io.Copy(io.MultiWriter(out, pw), resp.Body)
	if err != nil {
		p.Send(progressErrMsg{err: err})
		p.Quit()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if totalSize > 0 && written != totalSize {
		err := fmt.Errorf("incomplete download: got %d bytes, expected %d", written, totalSize)
		p.Send(progressErrMsg{err: err})
		p.Quit()
		return err
	}

	p.Send(downloadCompleteMsg{})

	// Wait a moment for UI to finish
	time.Sleep(200 * time.Millisecond)

	return nil
}

// VerifyChecksum compares the SHA256 digest of filePath against expected.
func VerifyChecksum(filePath string, expectedChecksum string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, expectedChecksum) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedChecksum, actual)
	}

	return nil
}

// ExtractArchive unpacks archivePath into destDir and returns the path of
// the single top-level directory it contained.
func ExtractArchive(archivePath, destDir string) (string, error) {
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		return extractZip(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		return extractTarGz(archivePath, destDir)
	}
	return "", fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
}

// sanitizeEntry rejects archive entries that would escape destDir.
func sanitizeEntry(destDir, name string) (string, error) {
	path := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal archive entry path: %s", name)
	}
	return path, nil
}

// checkSymlinkTarget rejects symlink entries whose target points outside
// destDir. Later entries can be written through the link, so an escaping
// target turns into an escaping write.
func checkSymlinkTarget(destDir, path, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("illegal archive symlink target: %s", linkname)
	}
	target := filepath.Join(filepath.Dir(path), filepath.FromSlash(linkname))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal archive symlink target: %s", linkname)
	}
	return nil
}

func extractZip(zipPath string, destDir string) (string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		path, err := sanitizeEntry(destDir, file.Name)
		if err != nil {
			return "", err
		}

		if file.FileInfo().IsDir() {
			os.MkdirAll(path, os.ModePerm)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}

		outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
		if err != nil {
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		rc, err := file.Open()
		if err != nil {
			outFile.Close()
			return "", fmt.Errorf("failed to open file in zip: %w", err)
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return "", fmt.Errorf("failed to extract file: %w", err)
		}
	}

	return topLevelDir(destDir)
}

func extractTarGz(tarPath string, destDir string) (string, error) {
	file, err := os.Open(tarPath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read archive: %w", err)
		}

		path, err := sanitizeEntry(destDir, header.Name)
		if err != nil {
			return "", err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, os.FileMode(header.Mode)); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return "", fmt.Errorf("failed to create file: %w", err)
			}
			_, err = io.Copy(outFile, tr)
			outFile.Close()
			if err != nil {
				return "", fmt.Errorf("failed to extract file: %w", err)
			}
		case tar.TypeSymlink:
			if err := checkSymlinkTarget(destDir, path, header.Linkname); err != nil {
				return "", err
			}
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			os.Remove(path)
			if err := os.Symlink(header.Linkname, path); err != nil {
				return "", fmt.Errorf("failed to create symlink: %w", err)
			}
		}
	}

	return topLevelDir(destDir)
}

// topLevelDir returns the single directory entry of destDir. JDK archives
// always unpack to one root like jdk-21.0.4+7.
func topLevelDir(destDir string) (string, error) {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extract directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(destDir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("archive contained no directory")
}
