package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/log"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

const snapshotKeyPrefix = "snapshot:" // Prefix for cached page bodies in DB

// SnapshotStore caches fetched HTML bodies in BadgerDB, keyed by canonical
// page URL. Crawl state itself (visited set, queue) is deliberately never
// persisted; the cache only spares the archive repeated fetches of the same
// snapshot across runs.
type SnapshotStore struct {
	db  *badger.DB
	log *logrus.Entry
}

// NewSnapshotStore opens (or creates) the cache database under cacheDir.
func NewSnapshotStore(cacheDir string, logger *logrus.Entry) (*SnapshotStore, error) {
	logger.Infof("Initializing snapshot cache at: %s", cacheDir)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", cacheDir, err)
	}

	// Configure Badger options
	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))
	opts := badger.DefaultOptions(cacheDir).
		WithLogger(badgerLogger). // Use custom logrus adapter
		WithNumVersionsToKeep(1)  // Only the latest body per URL matters

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: opening snapshot cache at %s: %v", utils.ErrCache, cacheDir, err)
	}

	logger.Info("Snapshot cache initialized successfully.")
	return &SnapshotStore{db: db, log: logger}, nil
}

// Get returns the cached HTML body for key, if present.
func (s *SnapshotStore) Get(key string) (html string, found bool, err error) {
	dbKey := []byte(snapshotKeyPrefix + key)
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			html = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: reading '%s': %v", utils.ErrCache, key, err)
	}
	return html, true, nil
}

// Put stores the HTML body for key, replacing any previous entry.
func (s *SnapshotStore) Put(key, html string) error {
	dbKey := []byte(snapshotKeyPrefix + key)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey, []byte(html))
	})
	if err != nil {
		return fmt.Errorf("%w: writing '%s': %v", utils.ErrCache, key, err)
	}
	return nil
}

// Len counts cached entries. Full key scan; used for diagnostics only.
func (s *SnapshotStore) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(snapshotKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: counting entries: %v", utils.ErrCache, err)
	}
	return count, nil
}

// RunGC runs one round of BadgerDB value log garbage collection.
// Cheap enough to call once at the end of a crawl.
func (s *SnapshotStore) RunGC() {
	if s.db == nil || s.db.IsClosed() {
		return
	}
	var err error
	// Loop GC until it returns ErrNoRewrite or another error
	for {
		// Run GC if log is at least 50% reclaimable space
		err = s.db.RunValueLogGC(0.5)
		if err != nil {
			break
		}
	}
	if errors.Is(err, badger.ErrNoRewrite) {
		s.log.Debug("Snapshot cache GC finished (no rewrite needed).")
	} else {
		s.log.Errorf("Snapshot cache GC error: %v", err)
	}
}

// Close flushes and closes the underlying database.
func (s *SnapshotStore) Close() error {
	if s.db == nil {
		return nil
	}
	start := time.Now()
	err := s.db.Close()
	s.log.Debugf("Snapshot cache closed in %v", time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: closing cache: %v", utils.ErrCache, err)
	}
	return nil
}
