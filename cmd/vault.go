package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/palangrotte/internal/crypto"
)

// Encrypt seals a plaintext folder list into a vault blob. The password
// is prompted twice with input masked.
func Encrypt(inputPath, outputPath string) {
	if _, err := os.Stat(inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: input file '%s' does not exist\n", inputPath)
		os.Exit(1)
	}

	password, err := ReadPasswordConfirm()
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	plaintext, err := os.ReadFile(inputPath)
	if err != nil {
		HandleError(err)
	}

	blob, err := crypto.Encrypt(plaintext, password)
	if err != nil {
		HandleError(err)
	}

	if err := os.WriteFile(outputPath, blob.Marshal(), 0600); err != nil {
		HandleError(err)
	}

	fmt.Printf("File encrypted successfully to: %s\n", outputPath)
}

// Decrypt opens a vault blob and writes the plaintext folder list.
func Decrypt(inputPath, outputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: input file '%s' does not exist\n", inputPath)
		os.Exit(1)
	}

	password, err := ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	blob, err := crypto.UnmarshalBlob(data)
	if err != nil {
		HandleError(err)
	}

	plaintext, err := crypto.Decrypt(blob, password)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthFailed) {
			fmt.Fprintln(os.Stderr, "Error during file decryption. Incorrect password or corrupted data.")
			os.Exit(1)
		}
		HandleError(err)
	}

	if err := os.WriteFile(outputPath, plaintext, 0600); err != nil {
		HandleError(err)
	}

	fmt.Printf("File decrypted successfully to: %s\n", outputPath)
}
