package journal

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestRegistrations(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	if err := j.RecordRegistration("/tmp/c1"); err != nil {
		t.Fatalf("Failed to record registration: %v", err)
	}
	if err := j.RecordRegistration("/tmp/c2"); err != nil {
		t.Fatalf("Failed to record registration: %v", err)
	}
	// Re-registering overwrites, does not duplicate
	if err := j.RecordRegistration("/tmp/c1"); err != nil {
		t.Fatalf("Failed to re-record registration: %v", err)
	}

	regs, err := j.Registrations()
	if err != nil {
		t.Fatalf("Failed to read registrations: %v", err)
	}
	if len(regs) != 2 {
		t.Errorf("Expected 2 registrations, got %d", len(regs))
	}
}

func TestDetectionsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	for i := 0; i < 5; i++ {
		if err := j.RecordDetection(fmt.Sprintf("/tmp/c1/file%d", i), "write"); err != nil {
			t.Fatalf("Failed to record detection: %v", err)
		}
	}

	dets, err := j.RecentDetections(3)
	if err != nil {
		t.Fatalf("Failed to read detections: %v", err)
	}
	if len(dets) != 3 {
		t.Fatalf("Expected 3 detections, got %d", len(dets))
	}
	if dets[0].Path != "/tmp/c1/file4" {
		t.Errorf("Newest detection first: got %s", dets[0].Path)
	}
	if dets[0].Kind != "write" {
		t.Errorf("Kind mismatch: got %s", dets[0].Kind)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	if err := j.RecordDetection("/tmp/c1/a.txt", "remove"); err != nil {
		t.Fatalf("Failed to record detection: %v", err)
	}
	j.Close()

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen journal: %v", err)
	}
	defer j2.Close()

	dets, err := j2.RecentDetections(10)
	if err != nil {
		t.Fatalf("Failed to read detections: %v", err)
	}
	if len(dets) != 1 || dets[0].Path != "/tmp/c1/a.txt" {
		t.Errorf("Detection not persisted: %+v", dets)
	}
}
