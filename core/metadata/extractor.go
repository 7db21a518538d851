package metadata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"MeloFM/logger"
	"MeloFM/model"

	"github.com/dhowden/tag"
)

// ErrFileNotFound is returned when the named song does not exist or cannot
// be opened under the songs directory.
var ErrFileNotFound = errors.New("song file not found")

// Extractor reads the tag container of files in the songs directory.
//
// Field semantics follow the original catalog behavior: a file without any
// recognizable tag container is still playable and gets the file name as its
// title with empty artist/album; a container with missing fields falls back
// to "Unknown" per field.
type Extractor struct {
	songsDir string
	prober   Prober
}

// NewExtractor creates an Extractor rooted at songsDir.
func NewExtractor(songsDir string, prober Prober) *Extractor {
	return &Extractor{songsDir: songsDir, prober: prober}
}

// Extract returns the metadata record for one file name in the songs directory.
func (e *Extractor) Extract(ctx context.Context, fileName string) (*model.SongMetadata, error) {
	fullPath := filepath.Join(e.songsDir, fileName)

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, fileName, err)
	}
	defer f.Close()

	meta := &model.SongMetadata{
		Title:  fileName,
		Artist: "",
		Album:  "",
	}

	if tags, err := tag.ReadFrom(f); err == nil {
		if tags.Title() != "" {
			meta.Title = tags.Title()
		}
		meta.Artist = tags.Artist()
		if meta.Artist == "" {
			meta.Artist = "Unknown"
		}
		meta.Album = tags.Album()
		if meta.Album == "" {
			meta.Album = "Unknown"
		}
	}

	if e.prober != nil {
		seconds, err := e.prober.Duration(ctx, fullPath)
		if err != nil {
			// Duration is best-effort; tags are still served without it.
			logger.Debug("Could not probe duration",
				logger.String("file", fileName),
				logger.ErrorField(err),
			)
		} else {
			meta.Duration = int(math.Round(seconds))
		}
	}

	return meta, nil
}
