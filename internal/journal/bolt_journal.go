package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	queryBucket = "queries"
	keyBytes    = 16 // 8 bytes recorded-at nanos + 8 bytes sequence
)

// boltRecord is the stored value; Expiry travels with the entry.
type boltRecord struct {
	Entry  Entry `json:"entry"`
	Expiry int64 `json:"expiry"`
}

// boltJournal implements a Journal backed by BoltDB.
type boltJournal struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Journal.
func openBolt(path string, opts Options) (Journal, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(queryBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	j := &boltJournal{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	j.lastCleanup.Store(j.now().Unix())
	return j, nil
}

func (b *boltJournal) Enabled() bool { return true }

// Close closes the BoltDB journal.
func (b *boltJournal) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends e. Keys sort chronologically.
func (b *boltJournal) Record(e Entry) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = now.UTC()
	}

	value, err := json.Marshal(boltRecord{Entry: e, Expiry: now.Add(b.entryTTL).Unix()})
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queryBucket))
		if bucket == nil {
			return fmt.Errorf("query bucket missing")
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, keyBytes)
		binary.BigEndian.PutUint64(key[:8], uint64(e.RecordedAt.UnixNano()))
		binary.BigEndian.PutUint64(key[8:], seq)
		return bucket.Put(key, value)
	})
}

// Recent returns up to limit unexpired entries, newest first.
func (b *boltJournal) Recent(limit int) ([]Entry, error) {
	if b == nil || b.db == nil || limit <= 0 {
		return nil, nil
	}

	now := b.now()
	var out []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queryBucket))
		if bucket == nil {
			return fmt.Errorf("query bucket missing")
		}
		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(out) < limit; k, v = cursor.Prev() {
			rec, ok := decodeRecord(v)
			if !ok || rec.Expiry <= now.Unix() {
				continue
			}
			out = append(out, rec.Entry)
		}
		return nil
	})
	return out, err
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid unbounded growth.
func (b *boltJournal) maybeCleanupExpired(now time.Time) error {
	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queryBucket))
		if bucket == nil {
			return fmt.Errorf("query bucket missing")
		}

		// deleting through the cursor while iterating skips keys
		var expired [][]byte
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			rec, ok := decodeRecord(v)
			if !ok || rec.Expiry <= now.Unix() {
				expired = append(expired, append([]byte(nil), k...))
			}
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func decodeRecord(value []byte) (boltRecord, bool) {
	var rec boltRecord
	if err := json.Unmarshal(value, &rec); err != nil || rec.Expiry <= 0 {
		return boltRecord{}, false
	}
	return rec, true
}
