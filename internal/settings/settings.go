// Package settings defines the immutable daemon configuration and its
// TOML loader.
package settings

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	ErrEmptyPool   = errors.New("file name and extension pools must not be empty")
	ErrInvalidSpan = errors.New("range minimum exceeds maximum")
)

// Span is an inclusive integer range.
type Span struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// Settings is the immutable process-wide configuration. It is built once
// at startup and shared by pointer across every component and every
// concurrent response task; nothing mutates it after Load.
type Settings struct {
	VaultFile   string `toml:"vault_file"`
	Password    string `toml:"password"`
	AlertURL    string `toml:"alert_url"`
	LogFile     string `toml:"log_file"`
	JournalFile string `toml:"journal_file"`

	FileNames      []string `toml:"file_names"`
	FileExtensions []string `toml:"file_extensions"`
	FileCount      Span     `toml:"file_count"`
	FileSize       Span     `toml:"file_size"`

	NotificationTitle   string `toml:"notification_title"`
	NotificationMessage string `toml:"notification_message"`
}

// Default returns the built-in configuration used when no settings file
// is available.
func Default() *Settings {
	return &Settings{
		VaultFile:   "folders.enc",
		AlertURL:    "https://alerts.example.com/palangrotte",
		LogFile:     "plgrt.log",
		JournalFile: "plgrt.db",
		FileNames: []string{
			"passwords",
			"documentation",
			"factures",
			"confidentiel",
			"profils",
			"budget",
			"personnel",
			"secret",
			"plans",
			"groupes",
			"autorisations",
		},
		FileExtensions: []string{"txt", "pdf", "docx", "xlsx", "pptx", "jpg", "png"},
		FileCount:      Span{Min: 2, Max: 5},
		FileSize:       Span{Min: 12 * 1024, Max: 120 * 1024},

		NotificationTitle:   "Security alert",
		NotificationMessage: "Unauthorized access to protected files was detected. The system is shutting down.",
	}
}

// Load reads a TOML settings file. Keys absent from the file keep their
// default value. Any error (missing file, parse failure, invalid values)
// is returned for the caller to fall back to Default; the fallback is
// never fatal.
func Load(path string) (*Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Validate checks pool and range sanity.
func (s *Settings) Validate() error {
	if len(s.FileNames) == 0 || len(s.FileExtensions) == 0 {
		return ErrEmptyPool
	}
	if s.FileCount.Min > s.FileCount.Max {
		return fmt.Errorf("file_count: %w", ErrInvalidSpan)
	}
	if s.FileSize.Min > s.FileSize.Max {
		return fmt.Errorf("file_size: %w", ErrInvalidSpan)
	}
	if s.FileCount.Min < 1 {
		return fmt.Errorf("file_count: minimum must be at least 1")
	}
	if s.FileSize.Min < 0 {
		return fmt.Errorf("file_size: minimum must not be negative")
	}
	return nil
}
