// Package store persists the last loaded catalog in a bbolt database so a
// restarted server can rebuild its index without re-uploading the CSV. This
// is an opt-in convenience, not a durability guarantee; feedback events are
// never persisted.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"bookrec/internal/domain"
)

var (
	bucketCatalog = []byte("catalog")
	bucketMeta    = []byte("meta")
	keyBooks      = []byte("books")
	keyInfo       = []byte("info")
)

// ErrNoSnapshot is returned when the database holds no saved catalog.
var ErrNoSnapshot = errors.New("store: no catalog snapshot")

// BoltStore wraps a bbolt database holding one catalog snapshot.
type BoltStore struct {
	db *bbolt.DB
}

type snapshotInfo struct {
	Count   int   `json:"count"`
	SavedAt int64 `json:"saved_at"`
}

// Open opens or creates the snapshot database at path.
func Open(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketCatalog, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SaveCatalog replaces the stored snapshot with the given books.
func (s *BoltStore) SaveCatalog(books []domain.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return err
	}
	info, err := json.Marshal(snapshotInfo{Count: len(books), SavedAt: time.Now().Unix()})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCatalog).Put(keyBooks, data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyInfo, info)
	})
}

// LoadCatalog returns the stored snapshot, or ErrNoSnapshot.
func (s *BoltStore) LoadCatalog() ([]domain.Book, error) {
	var books []domain.Book
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCatalog).Get(keyBooks)
		if data == nil {
			return ErrNoSnapshot
		}
		return json.Unmarshal(data, &books)
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// SavedAt returns when the snapshot was written, or zero time when absent.
func (s *BoltStore) SavedAt() (time.Time, error) {
	var info snapshotInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyInfo)
		if data == nil {
			return ErrNoSnapshot
		}
		return json.Unmarshal(data, &info)
	})
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Unix(info.SavedAt, 0), nil
}
