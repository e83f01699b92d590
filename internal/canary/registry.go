package canary

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/logger"
	"github.com/live-labs/palangrotte/internal/settings"
)

// Decoys must be accessible to every local account so that any user's
// access trips the canary, not only the owner's.
const decoyMode = 0666

// Watcher is the contract the registry needs from the filesystem
// watcher. Watch registers a folder for recursive monitoring.
type Watcher interface {
	Watch(path string) error
}

// Registry creates, seeds and re-arms canary folders.
type Registry struct {
	settings *settings.Settings
	log      *logger.Log
	watcher  Watcher
}

// NewRegistry creates a registry bound to a watcher and a log handle.
func NewRegistry(s *settings.Settings, log *logger.Log, w Watcher) *Registry {
	return &Registry{settings: s, log: log, watcher: w}
}

// Register arms one configured folder. Errors are folder-scoped: the
// caller skips the folder and continues with its siblings.
func (r *Registry) Register(folder string) error {
	info, err := os.Stat(folder)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(folder, 0755); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
		r.log.Printf("Folder %s created successfully.", folder)
		r.seed(folder)
		// A newly created folder stays unwatched for this pass; it
		// becomes eligible for monitoring on the next registration
		// cycle.
		return nil
	case err != nil:
		return fmt.Errorf("failed to stat folder %s: %w", folder, err)
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", folder, err)
	}

	hasFiles := false
	now := time.Now()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		hasFiles = true
		// Re-arm: refresh the mtime so a stale tamper signal from
		// before this run does not survive as baseline.
		path := filepath.Join(folder, entry.Name())
		if err := os.Chtimes(path, now, now); err != nil {
			r.log.Printf("Failed to touch file %s: %v", path, err)
		}
	}

	if !hasFiles {
		r.seed(folder)
	}

	if err := r.watcher.Watch(folder); err != nil {
		return fmt.Errorf("failed to start monitoring folder %s: %w", folder, err)
	}
	r.log.Printf("Started monitoring folder %s.", folder)
	return nil
}

// seed fills a folder with a random batch of decoy files. Per-file
// failures are logged and do not abort the batch.
func (r *Registry) seed(folder string) {
	count := spanPick(r.settings.FileCount)
	used := make(map[string]struct{}, count)

	for i := 0; i < count; i++ {
		name := r.settings.FileNames[rand.IntN(len(r.settings.FileNames))]
		ext := r.settings.FileExtensions[rand.IntN(len(r.settings.FileExtensions))]
		filename := name + "." + ext
		// Re-draw on collision so the batch lands exactly count files.
		for attempt := 0; attempt < 100; attempt++ {
			if _, taken := used[filename]; !taken {
				break
			}
			name = r.settings.FileNames[rand.IntN(len(r.settings.FileNames))]
			ext = r.settings.FileExtensions[rand.IntN(len(r.settings.FileExtensions))]
			filename = name + "." + ext
		}
		used[filename] = struct{}{}
		path := filepath.Join(folder, filename)

		size := spanPick(r.settings.FileSize)
		data, err := crypto.GenerateRandom(size)
		if err != nil {
			r.log.Printf("Failed to generate content for file %s: %v", path, err)
			continue
		}

		if err := os.WriteFile(path, data, decoyMode); err != nil {
			r.log.Printf("Failed to create file %s: %v", path, err)
			continue
		}

		if runtime.GOOS != "windows" {
			// WriteFile's mode is masked by the umask; force the
			// world-readable-writable bits.
			if err := os.Chmod(path, decoyMode); err != nil {
				r.log.Printf("Failed to set permissions for file %s: %v", path, err)
			}
		}
	}

	r.log.Printf("Created %d canary files in %s.", count, folder)
}

// spanPick picks uniformly from an inclusive range.
func spanPick(s settings.Span) int {
	if s.Min >= s.Max {
		return s.Min
	}
	return s.Min + rand.IntN(s.Max-s.Min+1)
}
