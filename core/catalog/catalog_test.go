package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"MeloFM/model"
)

// stubExtractor answers with a metadata record derived from the file name,
// or an error for names it is told to fail on.
type stubExtractor struct {
	failOn map[string]bool
}

func (e *stubExtractor) Extract(ctx context.Context, fileName string) (*model.SongMetadata, error) {
	if e.failOn[fileName] {
		return nil, errors.New("unreadable file")
	}
	return &model.SongMetadata{Title: fileName}, nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestListSongs(t *testing.T) {
	t.Run("FiltersByExtension", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "a.mp3", "b.opus", "c.flac", "notes.txt", "cover.jpg")
		if err := os.Mkdir(filepath.Join(dir, "subdir.mp3"), 0755); err != nil {
			t.Fatalf("failed to create subdir: %v", err)
		}

		cat := New(dir, &stubExtractor{})
		songs, err := cat.ListSongs(context.Background())
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}

		if len(songs) != 3 {
			t.Fatalf("expected 3 playable songs, got %d", len(songs))
		}
		for _, song := range songs {
			ext := filepath.Ext(song.Title)
			if ext != ".mp3" && ext != ".opus" && ext != ".flac" {
				t.Errorf("unexpected extension in listing: %s", song.Title)
			}
		}
	})

	t.Run("SkipsUnreadableFiles", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "good.mp3", "bad.mp3")

		cat := New(dir, &stubExtractor{failOn: map[string]bool{"bad.mp3": true}})
		songs, err := cat.ListSongs(context.Background())
		if err != nil {
			t.Fatalf("one corrupt file must not fail the listing: %v", err)
		}

		if len(songs) != 1 {
			t.Fatalf("expected 1 song after skipping the unreadable one, got %d", len(songs))
		}
		if songs[0].Title != "good.mp3" {
			t.Errorf("expected good.mp3 to survive, got %s", songs[0].Title)
		}
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		cat := New(filepath.Join(t.TempDir(), "missing"), &stubExtractor{})
		if _, err := cat.ListSongs(context.Background()); err == nil {
			t.Error("expected listing a missing directory to fail")
		}
	})
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "song.mp3")

	cat := New(dir, &stubExtractor{})

	t.Run("ExistingFile", func(t *testing.T) {
		path, err := cat.Resolve("song.mp3")
		if err != nil {
			t.Fatalf("failed to resolve existing song: %v", err)
		}
		if path != filepath.Join(dir, "song.mp3") {
			t.Errorf("unexpected resolved path: %s", path)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := cat.Resolve("other.mp3"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("TraversalAttempts", func(t *testing.T) {
		for _, name := range []string{
			"../secret.txt",
			"..",
			"sub/song.mp3",
			"/etc/passwd",
			"",
		} {
			if _, err := cat.Resolve(name); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected %q to be rejected, got %v", name, err)
			}
		}
	})

	t.Run("Directory", func(t *testing.T) {
		if err := os.Mkdir(filepath.Join(dir, "album"), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if _, err := cat.Resolve("album"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected directory to be rejected, got %v", err)
		}
	})
}
