package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/logger"
	"github.com/live-labs/palangrotte/internal/settings"
)

type fakeWatcher struct {
	watched []string
}

func (w *fakeWatcher) Watch(path string) error {
	w.watched = append(w.watched, path)
	return nil
}

func writeVault(t *testing.T, path string, folders string, password []byte) {
	t.Helper()
	blob, err := crypto.Encrypt([]byte(folders), password)
	if err != nil {
		t.Fatalf("Failed to encrypt vault: %v", err)
	}
	if err := os.WriteFile(path, blob.Marshal(), 0600); err != nil {
		t.Fatalf("Failed to write vault: %v", err)
	}
}

func TestLoadFolders(t *testing.T) {
	dir := t.TempDir()
	s := settings.Default()
	s.VaultFile = filepath.Join(dir, "folders.enc")
	writeVault(t, s.VaultFile, "/tmp/c1\n\n  /tmp/c2  \n", []byte("pw"))

	d := New(s, logger.Discard())
	folders, err := d.loadFolders([]byte("pw"))
	if err != nil {
		t.Fatalf("loadFolders failed: %v", err)
	}

	if len(folders) != 2 || folders[0] != "/tmp/c1" || folders[1] != "/tmp/c2" {
		t.Errorf("Folder list: got %v", folders)
	}
}

func TestLoadFoldersWrongPasswordIsFatal(t *testing.T) {
	dir := t.TempDir()
	s := settings.Default()
	s.VaultFile = filepath.Join(dir, "folders.enc")
	writeVault(t, s.VaultFile, "/tmp/c1", []byte("right"))

	d := New(s, logger.Discard())
	if _, err := d.loadFolders([]byte("wrong")); !errors.Is(err, crypto.ErrAuthFailed) {
		t.Errorf("Expected ErrAuthFailed, got %v", err)
	}
}

func TestLoadFoldersMissingVaultIsFatal(t *testing.T) {
	s := settings.Default()
	s.VaultFile = filepath.Join(t.TempDir(), "nope.enc")

	d := New(s, logger.Discard())
	if _, err := d.loadFolders([]byte("pw")); err == nil {
		t.Error("Expected error for missing vault file")
	}
}

func TestRegisterFoldersCreatesAndSeeds(t *testing.T) {
	dir := t.TempDir()
	c1 := filepath.Join(dir, "c1")
	c2 := filepath.Join(dir, "c2")

	s := settings.Default()
	d := New(s, logger.Discard())

	if err := d.registerFolders([]string{c1, c2}, &fakeWatcher{}, nil); err != nil {
		t.Fatalf("registerFolders failed: %v", err)
	}

	for _, folder := range []string{c1, c2} {
		entries, err := os.ReadDir(folder)
		if err != nil {
			t.Fatalf("Folder %s not created: %v", folder, err)
		}
		if len(entries) < 2 || len(entries) > 5 {
			t.Errorf("Folder %s seeded with %d files, want within [2,5]", folder, len(entries))
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil {
				t.Fatalf("Failed to stat %s: %v", e.Name(), err)
			}
			if info.Size() < 12288 || info.Size() > 122880 {
				t.Errorf("File %s size %d outside [12288,122880]", e.Name(), info.Size())
			}
		}
	}
}

func TestRegisterFoldersPartialFailureIsTolerated(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")

	s := settings.Default()
	d := New(s, logger.Discard())

	// Empty and root entries are folder-scoped failures, the sibling
	// still registers
	if err := d.registerFolders([]string{"", "/", good}, &fakeWatcher{}, nil); err != nil {
		t.Fatalf("registerFolders failed: %v", err)
	}

	if _, err := os.Stat(good); err != nil {
		t.Errorf("Surviving folder not created: %v", err)
	}
}

func TestRegisterFoldersAllFailIsFatal(t *testing.T) {
	s := settings.Default()
	d := New(s, logger.Discard())

	err := d.registerFolders([]string{"", "/"}, &fakeWatcher{}, nil)
	if !errors.Is(err, ErrNoFoldersRegistered) {
		t.Errorf("Expected ErrNoFoldersRegistered, got %v", err)
	}
}

func TestRegisterFoldersEmptyListIsFatal(t *testing.T) {
	s := settings.Default()
	d := New(s, logger.Discard())

	if err := d.registerFolders(nil, &fakeWatcher{}, nil); !errors.Is(err, ErrNoFoldersRegistered) {
		t.Errorf("Expected ErrNoFoldersRegistered, got %v", err)
	}
}

func TestParseFolderList(t *testing.T) {
	folders := parseFolderList([]byte("/a\r\n/b\n\n   \n/c"))
	if len(folders) != 3 {
		t.Fatalf("Expected 3 folders, got %v", folders)
	}
}
