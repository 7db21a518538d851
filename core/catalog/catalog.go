package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"MeloFM/logger"
	"MeloFM/model"
)

// ErrNotFound is returned when a requested song name does not resolve to a
// file inside the songs directory.
var ErrNotFound = errors.New("song not found")

// playableExtensions are the file extensions served by the catalog.
var playableExtensions = map[string]bool{
	".mp3":  true,
	".opus": true,
	".flac": true,
}

// Extractor produces the metadata record for one file in the songs directory.
type Extractor interface {
	Extract(ctx context.Context, fileName string) (*model.SongMetadata, error)
}

// Catalog lists and resolves playable files under a fixed songs directory.
// Every listing re-reads the directory and re-parses tags; nothing is cached.
type Catalog struct {
	songsDir  string
	extractor Extractor
}

// New creates a Catalog over songsDir.
func New(songsDir string, extractor Extractor) *Catalog {
	return &Catalog{songsDir: songsDir, extractor: extractor}
}

// SongsDir returns the directory the catalog serves from.
func (c *Catalog) SongsDir() string {
	return c.songsDir
}

// ListSongs enumerates the songs directory in directory order and returns a
// metadata record per playable file. Files whose metadata cannot be read are
// skipped so one corrupt file never fails the whole listing.
func (c *Catalog) ListSongs(ctx context.Context) ([]*model.SongMetadata, error) {
	entries, err := os.ReadDir(c.songsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read songs directory %s: %w", c.songsDir, err)
	}

	songs := make([]*model.SongMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !playableExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		meta, err := c.extractor.Extract(ctx, entry.Name())
		if err != nil {
			logger.Warn("Skipping unreadable song",
				logger.String("file", entry.Name()),
				logger.ErrorField(err),
			)
			continue
		}
		songs = append(songs, meta)
	}

	return songs, nil
}

// Resolve maps a requested song name to its path inside the songs directory.
// The name must be a bare file name; anything that would escape the songs
// directory is rejected as not found.
func (c *Catalog) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	fullPath := filepath.Join(c.songsDir, name)
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fullPath, nil
}
