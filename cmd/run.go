package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/palangrotte/internal/crypto"
	"github.com/live-labs/palangrotte/internal/daemon"
	"github.com/live-labs/palangrotte/internal/logger"
)

// Run starts the monitoring daemon. It blocks in the watch loop and
// returns to the shell only on a fatal startup condition.
func Run(configPath string) {
	s := LoadSettings(configPath)

	log, err := logger.Open(s.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\nRunning without alert log.\n", err)
		log = logger.Discard()
	}
	defer log.Close()

	password, err := ResolvePassword(s)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	d := daemon.New(s, log)
	if err := d.Run(password); err != nil {
		log.Print(err.Error())
		HandleError(err)
	}
}
