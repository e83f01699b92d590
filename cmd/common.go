package cmd

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/keyring"
	"github.com/live-labs/palangrotte/internal/settings"
)

// ReadPassword reads a password from the terminal without echoing
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func ReadPasswordConfirm() ([]byte, error) {
	password1, err := ReadPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Return a copy of the password
	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// ResolvePassword returns the vault password from the first available
// source: settings file, PALANGROTTE_PASSWORD environment variable, OS
// keyring, interactive prompt.
// The caller is responsible for calling crypto.ClearBytes on the result.
func ResolvePassword(s *settings.Settings) ([]byte, error) {
	if s.Password != "" {
		return []byte(s.Password), nil
	}

	if env := os.Getenv("PALANGROTTE_PASSWORD"); env != "" {
		result := make([]byte, len(env))
		copy(result, env)
		return result, nil
	}

	if stored, err := keyring.GetPassword(s.VaultFile); err == nil {
		return []byte(stored), nil
	}

	return ReadPassword("Enter vault password: ")
}

// LoadSettings loads the settings file, falling back to built-in
// defaults with a warning. The fallback is never fatal.
func LoadSettings(path string) *settings.Settings {
	s, err := settings.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\nUsing built-in defaults.\n", err)
		return settings.Default()
	}
	return s
}

// HandleError reports an error and exits
func HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
