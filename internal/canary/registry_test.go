package canary

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/live-labs/palangrotte/internal/logger"
	"github.com/live-labs/palangrotte/internal/settings"
)

type fakeWatcher struct {
	watched []string
	err     error
}

func (w *fakeWatcher) Watch(path string) error {
	if w.err != nil {
		return w.err
	}
	w.watched = append(w.watched, path)
	return nil
}

func testSettings() *settings.Settings {
	s := settings.Default()
	s.FileCount = settings.Span{Min: 2, Max: 5}
	s.FileSize = settings.Span{Min: 12288, Max: 122880}
	return s
}

func regularFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	var files []os.DirEntry
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	return files
}

func TestRegisterMissingFolderSeedsButDoesNotWatch(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "decoys")
	watcher := &fakeWatcher{}
	reg := NewRegistry(testSettings(), logger.Discard(), watcher)

	if err := reg.Register(folder); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := os.Stat(folder); err != nil {
		t.Fatalf("Folder not created: %v", err)
	}

	files := regularFiles(t, folder)
	if len(files) < 2 || len(files) > 5 {
		t.Errorf("Seeded file count: got %d, want within [2,5]", len(files))
	}
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			t.Fatalf("Failed to stat %s: %v", f.Name(), err)
		}
		if info.Size() < 12288 || info.Size() > 122880 {
			t.Errorf("File %s size %d outside [12288,122880]", f.Name(), info.Size())
		}
		if !strings.Contains(f.Name(), ".") {
			t.Errorf("File %s has no extension", f.Name())
		}
	}

	// One-cycle grace period: the fresh folder is not watched yet
	if len(watcher.watched) != 0 {
		t.Errorf("Fresh folder must not be watched this pass, got %v", watcher.watched)
	}
}

func TestRegisterSeededFolderWatchesOnSecondPass(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "decoys")
	watcher := &fakeWatcher{}
	reg := NewRegistry(testSettings(), logger.Discard(), watcher)

	if err := reg.Register(folder); err != nil {
		t.Fatalf("First pass failed: %v", err)
	}
	before := len(regularFiles(t, folder))

	if err := reg.Register(folder); err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}

	if got := len(regularFiles(t, folder)); got != before {
		t.Errorf("Second pass changed file count: %d -> %d", before, got)
	}
	if len(watcher.watched) != 1 || watcher.watched[0] != folder {
		t.Errorf("Folder not watched on second pass: %v", watcher.watched)
	}
}

func TestRegisterEmptyExistingFolderSeedsAndWatches(t *testing.T) {
	folder := t.TempDir()
	watcher := &fakeWatcher{}
	reg := NewRegistry(testSettings(), logger.Discard(), watcher)

	if err := reg.Register(folder); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got := len(regularFiles(t, folder)); got < 2 || got > 5 {
		t.Errorf("Seeded file count: got %d, want within [2,5]", got)
	}
	if len(watcher.watched) != 1 {
		t.Errorf("Existing folder must be watched, got %v", watcher.watched)
	}
}

func TestRegisterRearmsWithoutDuplicating(t *testing.T) {
	folder := t.TempDir()
	existing := filepath.Join(folder, "a.txt")
	if err := os.WriteFile(existing, []byte("bait"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	stale := time.Now().Add(-24 * time.Hour)
	if err := os.Chtimes(existing, stale, stale); err != nil {
		t.Fatalf("Failed to age file: %v", err)
	}

	watcher := &fakeWatcher{}
	reg := NewRegistry(testSettings(), logger.Discard(), watcher)

	if err := reg.Register(folder); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	files := regularFiles(t, folder)
	if len(files) != 1 || files[0].Name() != "a.txt" {
		t.Fatalf("Non-empty folder must not be reseeded: %v", files)
	}

	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "bait" {
		t.Errorf("Content changed by re-arm: %q, %v", data, err)
	}

	info, err := os.Stat(existing)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if time.Since(info.ModTime()) > time.Minute {
		t.Errorf("Modification time not refreshed: %v", info.ModTime())
	}

	if len(watcher.watched) != 1 {
		t.Errorf("Folder with files must be watched, got %v", watcher.watched)
	}
}

func TestRegisterWatchFailureIsFolderScoped(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	watcher := &fakeWatcher{err: os.ErrPermission}
	reg := NewRegistry(testSettings(), logger.Discard(), watcher)

	if err := reg.Register(folder); err == nil {
		t.Error("Expected error when watch start fails")
	}
}

func TestRegisterPathIsFile(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	reg := NewRegistry(testSettings(), logger.Discard(), &fakeWatcher{})
	if err := reg.Register(notADir); err == nil {
		t.Error("Expected error when path is a regular file")
	}
}

func TestSeededFilesAreWorldWritable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}

	folder := t.TempDir()
	reg := NewRegistry(testSettings(), logger.Discard(), &fakeWatcher{})
	if err := reg.Register(folder); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, f := range regularFiles(t, folder) {
		info, err := f.Info()
		if err != nil {
			t.Fatalf("Failed to stat %s: %v", f.Name(), err)
		}
		if info.Mode().Perm() != 0666 {
			t.Errorf("File %s mode %o, want 0666", f.Name(), info.Mode().Perm())
		}
	}
}

func TestSpanPick(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := spanPick(settings.Span{Min: 2, Max: 5}); got < 2 || got > 5 {
			t.Fatalf("spanPick outside range: %d", got)
		}
	}
	if got := spanPick(settings.Span{Min: 7, Max: 7}); got != 7 {
		t.Errorf("Degenerate span: got %d, want 7", got)
	}
}
