// Package eventlog persists daemon events the dashboard does not act on, so
// the history survives restarts and stays inspectable on the events page.
package eventlog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hertelukas/synctui/internal/syncthing"
)

var bucketEvents = []byte("events")

// Log is an append-only event history backed by BoltDB. Keys are the
// bucket's own sequence numbers, big-endian so byte order equals append
// order.
type Log struct {
	db *bolt.DB
}

// Open creates or opens the log at path, creating parent directories as
// needed.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create event log directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append stores one event at the end of the log.
func (l *Log) Append(ev syncthing.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, data)
	})
}

// Recent returns up to n events, newest first.
func (l *Log) Recent(n int) ([]syncthing.Event, error) {
	if n <= 0 {
		return nil, nil
	}
	var events []syncthing.Event
	err := l.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket(bucketEvents).Cursor()
		for k, v := cursor.Last(); k != nil && len(events) < n; k, v = cursor.Prev() {
			var ev syncthing.Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return fmt.Errorf("decode stored event: %w", err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Len returns the number of stored events.
func (l *Log) Len() (int, error) {
	var n int
	err := l.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketEvents).Stats().KeyN
		return nil
	})
	return n, err
}
