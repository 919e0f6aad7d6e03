// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - Locating MP3 albums on disk
//   - File writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//
// # Album Discovery
//
// FindAlbums walks a music root and groups MP3 files by directory:
//
//	albums, err := ioutils.FindAlbums("/music/classical")
//	for _, album := range albums {
//	    // album.Dir, album.Files
//	}
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/report.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Work: Part 1/2") // Returns "Work_ Part 1_2"
package ioutils
