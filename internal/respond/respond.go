// Package respond implements the per-detection escalation: log the
// detection, alert the remote endpoint, broadcast to local sessions and
// shut the host down.
//
// Every invocation is strictly sequential and non-retrying, and fails
// open at every step after the first: a failed remote alert or session
// broadcast is logged and the escalation continues. Invocations for
// different paths run concurrently and independently with no shared
// ordering.
package respond

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/live-labs/palangrotte/internal/journal"
	"github.com/live-labs/palangrotte/internal/logger"
	"github.com/live-labs/palangrotte/internal/settings"
	"github.com/live-labs/palangrotte/internal/watch"
)

// SessionNotifier broadcasts an alert to all active interactive user
// sessions on the host.
type SessionNotifier interface {
	Broadcast(title, message string) error
}

// ShutdownAgent halts the host. Force is attempted first; Graceful is
// the fallback when the forced request itself fails.
type ShutdownAgent interface {
	Force() error
	Graceful() error
}

// alert is the remote notification body.
type alert struct {
	File string `json:"file"`
}

// Orchestrator runs the 4-step escalation for each detected path.
type Orchestrator struct {
	settings *settings.Settings
	log      *logger.Log
	journal  *journal.Journal // optional, best-effort
	client   *http.Client
	sessions SessionNotifier
	shutdown ShutdownAgent
}

// NewOrchestrator wires an orchestrator. journal may be nil. The HTTP
// client carries no timeout: a hanging alert endpoint delays only the
// one response task it belongs to.
func NewOrchestrator(s *settings.Settings, log *logger.Log, j *journal.Journal, sessions SessionNotifier, shutdown ShutdownAgent) *Orchestrator {
	return &Orchestrator{
		settings: s,
		log:      log,
		journal:  j,
		client:   &http.Client{},
		sessions: sessions,
		shutdown: shutdown,
	}
}

// Respond runs the escalation for one affected path. It runs as a
// detached task: nothing is returned to any caller, all outcomes are
// visible only through the log.
func (o *Orchestrator) Respond(path string, kind watch.Kind) {
	o.log.Printf("Modification detected in folder or file: %s", path)
	if o.journal != nil {
		if err := o.journal.RecordDetection(path, kind.String()); err != nil {
			o.log.Printf("Failed to journal detection for %s: %v", path, err)
		}
	}

	o.notifyRemote(path)
	o.notifySessions()
	o.shutdownHost()
}

// notifyRemote sends one POST to the alert endpoint. The response body
// is ignored; only the status decides the log message. No retry.
func (o *Orchestrator) notifyRemote(path string) {
	body, err := json.Marshal(alert{File: path})
	if err != nil {
		o.log.Printf("Failed to encode notification for file: %s. Error: %v", path, err)
		return
	}

	resp, err := o.client.Post(o.settings.AlertURL, "application/json", bytes.NewReader(body))
	if err != nil {
		o.log.Printf("Failed to send notification for file: %s. Error: %v", path, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		o.log.Printf("Successfully sent notification for file: %s", path)
	} else {
		o.log.Printf("Failed to send notification for file: %s. Status: %s", path, resp.Status)
	}
}

func (o *Orchestrator) notifySessions() {
	if err := o.sessions.Broadcast(o.settings.NotificationTitle, o.settings.NotificationMessage); err != nil {
		o.log.Printf("Failed to notify user sessions: %v", err)
		return
	}
	o.log.Print("Successfully notified user sessions.")
}

// shutdownHost tries a forced shutdown, falls back to a graceful one,
// and when both fail logs and gives up. The daemon has no stronger
// lever, so the process stays running.
func (o *Orchestrator) shutdownHost() {
	o.log.Print("Attempting to force system shutdown...")
	err := o.shutdown.Force()
	if err == nil {
		o.log.Print("Forced system shutdown command executed successfully.")
		return
	}
	o.log.Printf("Forced shutdown failed: %v. Attempting graceful shutdown...", err)

	if err := o.shutdown.Graceful(); err == nil {
		o.log.Print("Graceful system shutdown command executed successfully.")
	} else {
		o.log.Printf("Graceful shutdown also failed: %v", err)
	}
}
