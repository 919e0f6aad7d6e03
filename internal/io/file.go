package ioutils

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// AlbumFiles is one album directory and the MP3 files found inside it.
//
// Grouping is purely directory-based: every directory that directly
// contains at least one MP3 is treated as one album. Nested directories
// become separate albums of their own.
type AlbumFiles struct {
	// Dir is the absolute path of the album directory.
	Dir string

	// Files holds the MP3 paths inside Dir, sorted by name.
	Files []string
}

// FindAlbums walks root and groups the MP3 files it finds by directory.
//
// The extension check is case-insensitive (.mp3, .MP3). Hidden
// directories (dot-prefixed) are skipped. The result is sorted by
// directory path so runs are deterministic.
//
// Example:
//
//	albums, err := ioutils.FindAlbums("/music/classical")
//	for _, album := range albums {
//	    fmt.Printf("%s: %d files\n", album.Dir, len(album.Files))
//	}
func FindAlbums(root string) ([]AlbumFiles, error) {
	byDir := make(map[string][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".mp3") {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	albums := make([]AlbumFiles, 0, len(byDir))
	for dir, files := range byDir {
		sort.Strings(files)
		albums = append(albums, AlbumFiles{Dir: dir, Files: files})
	}
	sort.Slice(albums, func(i, j int) bool { return albums[i].Dir < albums[j].Dir })
	return albums, nil
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	report := []byte(`{"album": ...}`)
//	err := WriteFile(ctx, "/music/report.json", report)
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// This function ensures filenames are valid across different operating systems,
// particularly Windows which has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Symphony No. 5: II")  // Returns "Symphony No. 5_ II"
//	SanitizeFileName("Track...")            // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters with underscore
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots (Windows doesn't allow filenames ending with dots)
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space for cleaner names
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/reports")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
