package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the accepted image suffixes in scan order. Matching is
// case-sensitive.
var Extensions = []string{".jpeg", ".jpg", ".png", ".bmp"}

// ErrNoImages is matched by a *DirectoryError for a directory without images.
var ErrNoImages = errors.New("no images with an accepted extension")

// DirectoryError reports a source directory that cannot be used. The user may
// retry with another path.
type DirectoryError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("directory %q: %s", e.Path, e.Reason)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// ImageEntry is one image of a scanned directory. Entries are immutable and
// identified by their position in the scan result.
type ImageEntry struct {
	Path string
}

// Base returns the file name of the image.
func (e ImageEntry) Base() string { return filepath.Base(e.Path) }

// Stem returns the file name without its extension.
func (e ImageEntry) Stem() string {
	base := e.Base()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Scan lists the images directly inside dir. Files are grouped by extension in
// Extensions order and sorted by name within each group.
func Scan(dir string) ([]ImageEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Reason: "cannot read directory", Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryError{Path: dir, Reason: "not a directory"}
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Reason: "cannot list directory", Err: err}
	}

	groups := make([][]ImageEntry, len(Extensions))
	for _, de := range dirEntries {
		// Must be a regular file or a symlink.
		if !de.Type().IsRegular() && de.Type()&os.ModeSymlink == 0 {
			continue
		}
		name := de.Name()
		for i, ext := range Extensions {
			if strings.HasSuffix(name, ext) {
				groups[i] = append(groups[i], ImageEntry{Path: filepath.Join(dir, name)})
				break
			}
		}
	}

	var images []ImageEntry
	for _, g := range groups {
		images = append(images, g...)
	}
	if len(images) == 0 {
		return nil, &DirectoryError{Path: dir, Reason: "no images found", Err: ErrNoImages}
	}
	return images, nil
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", dir, err)
	}
	return nil
}
