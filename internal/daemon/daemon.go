// Package daemon wires the tripwire engine together and owns the
// lifecycle: Init -> LoadConfig -> RegisterFolders -> Watching.
//
// Watching is the steady state: arbitrarily many concurrent
// event-response pipelines execute until the process is terminated
// externally, usually by the shutdown a response itself triggers. Only
// three conditions are fatal: the vault cannot be decrypted, the
// filesystem watcher cannot be constructed, or not a single configured
// folder registers.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/live-labs/palangrotte/internal/canary"
	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/journal"
	"github.com/live-labs/palangrotte/internal/logger"
	"github.com/live-labs/palangrotte/internal/respond"
	"github.com/live-labs/palangrotte/internal/security"
	"github.com/live-labs/palangrotte/internal/settings"
	"github.com/live-labs/palangrotte/internal/watch"
)

var ErrNoFoldersRegistered = errors.New("no canary folders could be registered")

// Daemon is the canary monitoring process.
type Daemon struct {
	settings *settings.Settings
	log      *logger.Log
}

// New creates a daemon bound to its configuration and log handle.
func New(s *settings.Settings, log *logger.Log) *Daemon {
	return &Daemon{settings: s, log: log}
}

// Run executes the full lifecycle and blocks in the watch loop. It
// returns only on a fatal startup condition.
func (d *Daemon) Run(password []byte) error {
	folders, err := d.loadFolders(password)
	if err != nil {
		return err
	}

	watcher, err := watch.NewWatcher(d.log)
	if err != nil {
		return err
	}
	defer watcher.Close()

	jnl := d.openJournal()
	if jnl != nil {
		defer jnl.Close()
	}

	if err := d.registerFolders(folders, watcher, jnl); err != nil {
		return err
	}

	orchestrator := respond.NewOrchestrator(
		d.settings,
		d.log,
		jnl,
		respond.NewSessionNotifier(),
		respond.NewShutdownAgent(),
	)

	router := watch.NewRouter(watcher.Events(), orchestrator)
	router.Run()
	return nil
}

// loadFolders reads and decrypts the folder vault. Any failure here is
// fatal: without the folder list there is nothing to arm.
func (d *Daemon) loadFolders(password []byte) ([]string, error) {
	data, err := os.ReadFile(d.settings.VaultFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file %s: %w", d.settings.VaultFile, err)
	}

	blob, err := crypto.UnmarshalBlob(data)
	if err != nil {
		return nil, fmt.Errorf("vault file %s: %w", d.settings.VaultFile, err)
	}

	plaintext, err := crypto.Decrypt(blob, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt vault file %s: %w", d.settings.VaultFile, err)
	}

	return parseFolderList(plaintext), nil
}

// parseFolderList splits the decrypted vault into one folder path per
// line, dropping blank lines.
func parseFolderList(data []byte) []string {
	var folders []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			folders = append(folders, line)
		}
	}
	return folders
}

// openJournal opens the detection journal. The journal is best-effort:
// failure is logged and the daemon runs without it.
func (d *Daemon) openJournal() *journal.Journal {
	jnl, err := journal.Open(d.settings.JournalFile)
	if err != nil {
		d.log.Printf("Journal unavailable, continuing without it: %v", err)
		return nil
	}
	return jnl
}

// registerFolders attempts registration for every configured folder
// independently. Folder-scoped failures are logged and skipped; the
// daemon is fatal only when all folders fail.
func (d *Daemon) registerFolders(folders []string, w canary.Watcher, jnl *journal.Journal) error {
	registry := canary.NewRegistry(d.settings, d.log, w)
	validator := security.NewFolderValidator()

	registered := 0
	for _, folder := range folders {
		path, err := validator.Validate(folder)
		if err != nil {
			d.log.Printf("Skipping folder %q: %v", folder, err)
			continue
		}

		if err := registry.Register(path); err != nil {
			d.log.Print(err.Error())
			continue
		}
		registered++

		if jnl != nil {
			if err := jnl.RecordRegistration(path); err != nil {
				d.log.Printf("Failed to journal registration of %s: %v", path, err)
			}
		}
	}

	if registered == 0 {
		return ErrNoFoldersRegistered
	}
	d.log.Printf("Registered %d canary folders for monitoring.", registered)
	return nil
}
