// Package publish writes assembled themes to disk, packs them as zip
// archives and installs them into a WordPress site.
package publish

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"anvilwp_server/internal/theme"
)

// archiveTime is stamped on every zip entry so equal bundles zip to equal
// bytes.
var archiveTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteDir writes the bundle under dir/{slug}/ and returns that directory.
func WriteDir(dir string, b theme.Bundle) (string, error) {
	root := filepath.Join(dir, b.Slug)
	filesCount := 0
	for _, name := range b.Paths() {
		rel, err := safePath(name)
		if err != nil {
			return "", err
		}
		content, _ := b.Get(name)
		filePath := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("failed to write file %s: %w", name, err)
		}
		filesCount++
	}
	log.Printf("Info: wrote %d files of theme %s to %s", filesCount, b.Slug, root)
	return root, nil
}

// Zip writes the bundle as a zip archive with every entry under {slug}/, in
// path order.
func Zip(w io.Writer, b theme.Bundle) error {
	zw := zip.NewWriter(w)
	for _, name := range b.Paths() {
		rel, err := safePath(name)
		if err != nil {
			return err
		}
		content, _ := b.Get(name)
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     path.Join(b.Slug, rel),
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// ZipBytes is Zip into memory.
func ZipBytes(b theme.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := Zip(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// safePath rejects absolute paths and paths escaping the theme directory.
func safePath(name string) (string, error) {
	clean := path.Clean(name)
	if name == "" || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("publish: unsafe bundle path %q", name)
	}
	return clean, nil
}
