package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/live-labs/palangrotte/internal/journal"
)

// Status shows vault and journal state. Requires no password.
func Status(configPath string) {
	s := LoadSettings(configPath)

	if info, err := os.Stat(s.VaultFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("Vault: %s not found\n", s.VaultFile)
			fmt.Println("Run 'palangrotte encrypt <folders.txt> <folders.enc>' to create one")
		} else {
			HandleError(err)
		}
	} else {
		fmt.Printf("Vault: %s (%d bytes)\n", s.VaultFile, info.Size())
	}

	if _, err := os.Stat(s.JournalFile); err != nil {
		fmt.Println("Journal: none")
		return
	}

	jnl, err := journal.Open(s.JournalFile)
	if err != nil {
		HandleError(err)
	}
	defer jnl.Close()

	regs, err := jnl.Registrations()
	if err != nil {
		HandleError(err)
	}
	fmt.Println("\nRegistered folders:")
	if len(regs) == 0 {
		fmt.Println("  (none)")
	}
	for _, reg := range regs {
		fmt.Printf("  %s (armed %s)\n", reg.Folder, reg.Time.Format(time.RFC3339))
	}

	dets, err := jnl.RecentDetections(10)
	if err != nil {
		HandleError(err)
	}
	fmt.Println("\nRecent detections:")
	if len(dets) == 0 {
		fmt.Println("  (none)")
	}
	for _, det := range dets {
		fmt.Printf("  %s %s (%s)\n", det.Time.Format(time.RFC3339), det.Path, det.Kind)
	}
}
