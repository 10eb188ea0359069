// Package boltdb persists the launch history. History is append-only and
// written after the handoff completes, so the routing pipeline itself stays
// stateless.
package boltdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/kiosk404/portkey/pkg/utils/json"
)

var bucketHistory = []byte("history")

// Record is one routed-and-launched invocation.
type Record struct {
	ID        string    `json:"id"`
	Utterance string    `json:"utterance"`
	Tool      string    `json:"tool"`
	Model     string    `json:"model"`
	Argv      []string  `json:"argv"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore wraps a BoltDB instance holding launch records.
type HistoryStore struct {
	db *bolt.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Close closes the underlying BoltDB instance.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Append stores a new record. ID and CreatedAt are filled in when empty.
// Keys are timestamp-prefixed so cursor order is chronological.
func (s *HistoryStore) Append(rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		key := rec.CreatedAt.UTC().Format(time.RFC3339Nano) + "/" + rec.ID
		return b.Put([]byte(key), data)
	})
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *HistoryStore) List(limit int) ([]*Record, error) {
	var records []*Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketHistory).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
