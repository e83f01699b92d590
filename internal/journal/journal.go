// Package journal provides the BBolt-backed detection journal.
//
// Database structure uses two buckets:
//   - registrations: one entry per canary folder, keyed by path
//   - detections: sequence-keyed entries, one per tripped response
//
// The journal exists for passwordless inspection via the status command.
// It is strictly best-effort: journal writes never delay or abort a
// response pipeline, and a daemon without a journal keeps running.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	RegistrationsBucket = []byte("registrations")
	DetectionsBucket    = []byte("detections")
)

// Registration records one successfully armed canary folder.
type Registration struct {
	Folder string    `json:"folder"`
	Time   time.Time `json:"time"`
}

// Detection records one response invocation.
type Detection struct {
	Path string    `json:"path"`
	Kind string    `json:"kind"`
	Time time.Time `json:"time"`
}

// Journal provides BBolt-based persistence for registrations and
// detections.
type Journal struct {
	db *bolt.DB
}

// Open opens or creates a journal database and its bucket structure.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{RegistrationsBucket, DetectionsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordRegistration stores the registration of one folder. Re-registering
// the same folder overwrites the previous entry.
func (j *Journal) RecordRegistration(folder string) error {
	reg := Registration{Folder: folder, Time: time.Now()}
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(RegistrationsBucket).Put([]byte(folder), data)
	})
}

// RecordDetection appends one detection entry.
func (j *Journal) RecordDetection(path, kind string) error {
	det := Detection{Path: path, Kind: kind, Time: time.Now()}
	data, err := json.Marshal(det)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(DetectionsBucket)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, data)
	})
}

// Registrations returns all recorded folder registrations.
func (j *Journal) Registrations() ([]Registration, error) {
	var regs []Registration
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(RegistrationsBucket).ForEach(func(_, v []byte) error {
			var reg Registration
			if err := json.Unmarshal(v, &reg); err != nil {
				return err
			}
			regs = append(regs, reg)
			return nil
		})
	})
	return regs, err
}

// RecentDetections returns up to n detections, newest first.
func (j *Journal) RecentDetections(n int) ([]Detection, error) {
	var dets []Detection
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(DetectionsBucket).Cursor()
		for k, v := c.Last(); k != nil && len(dets) < n; k, v = c.Prev() {
			var det Detection
			if err := json.Unmarshal(v, &det); err != nil {
				return err
			}
			dets = append(dets, det)
		}
		return nil
	})
	return dets, err
}
