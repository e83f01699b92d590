package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/keyring"
)

// KeyringSave saves the vault password to the OS keyring
func KeyringSave(configPath string) {
	s := LoadSettings(configPath)

	password, err := ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	// Verify against the vault when it exists, so a typo does not get
	// persisted
	if data, err := os.ReadFile(s.VaultFile); err == nil {
		blob, err := crypto.UnmarshalBlob(data)
		if err != nil {
			HandleError(err)
		}
		if _, err := crypto.Decrypt(blob, password); err != nil {
			fmt.Fprintln(os.Stderr, "Error: password does not open the vault")
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: vault %s not found, saving password unverified\n", s.VaultFile)
	}

	if err := keyring.SavePassword(s.VaultFile, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the vault password from the OS keyring
func KeyringDelete(configPath string) {
	s := LoadSettings(configPath)

	if err := keyring.DeletePassword(s.VaultFile); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a vault password is stored in the keyring
func KeyringStatus(configPath string) {
	s := LoadSettings(configPath)

	if keyring.HasPassword(s.VaultFile) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
