package repositories

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// maxPendingWrites bounds the batch size used when loading a backup.
const maxPendingWrites = 256

// Store owns the Badger handle shared by every repository. An empty path
// opens an in-memory database that disappears with the process.
type Store struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	inMemory bool
}

// Open opens (or creates) the store at path. logger may be nil to silence
// Badger.
func Open(path string, logger badger.Logger) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.
		WithLogger(logger).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &Store{
		db:       db,
		dbPath:   path,
		inMemory: path == "",
	}, nil
}

// DB exposes the underlying handle for repository constructors.
func (s *Store) DB() *badger.DB {
	return s.db
}

// InMemory reports whether the store is discarded on exit.
func (s *Store) InMemory() bool {
	return s.inMemory
}

// Path is the on-disk directory, empty for in-memory stores.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}

// Backup writes a full snapshot to w and returns the version it covers.
func (s *Store) Backup(w io.Writer) (uint64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	since, err := s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to backup store: %w", err)
	}
	return since, nil
}

// Restore replaces the whole store with the snapshot read from r. The
// snapshot is loaded into a scratch database first so a corrupt file
// leaves the current data untouched.
func (s *Store) Restore(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := checkSnapshot(data); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var current bytes.Buffer
	if _, err := s.db.Backup(&current, 0); err != nil {
		return fmt.Errorf("failed to backup store: %w", err)
	}
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("failed to drop store: %w", err)
	}
	if err := load(s.db, bytes.NewReader(data)); err != nil {
		if rerr := s.db.DropAll(); rerr == nil {
			_ = load(s.db, &current)
		}
		return err
	}
	return nil
}

// checkSnapshot loads data into a throwaway in-memory database.
func checkSnapshot(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("failed to load backup: %w", ErrEmptyBackup)
	}
	scratch, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("failed to open scratch store: %w", err)
	}
	defer scratch.Close()
	return load(scratch, bytes.NewReader(data))
}

// load wraps DB.Load, which panics on some malformed input.
func load(db *badger.DB, r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("failed to load backup: %w: %v", ErrInvalidBackup, p)
		}
	}()
	if err := db.Load(r, maxPendingWrites); err != nil {
		return fmt.Errorf("failed to load backup: %w: %v", ErrInvalidBackup, err)
	}
	return nil
}

// Clear drops every key.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.DropAll()
}

// IsEmpty reports whether the store holds no projects, posts or messages.
func (s *Store) IsEmpty() (bool, error) {
	for _, prefix := range []string{ProjectKeyPrefix, PostKeyPrefix, MessageKeyPrefix} {
		n, err := countPrefix(s.db, prefix)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

// Seed loads the seed records when the store is empty and reports
// whether anything was written.
func (s *Store) Seed() (bool, error) {
	empty, err := s.IsEmpty()
	if err != nil || !empty {
		return false, err
	}

	projects := NewBadgerProjectRepository(s.db)
	for _, p := range SeedProjects() {
		if err := projects.Create(p); err != nil {
			return false, fmt.Errorf("failed to seed project %q: %w", p.Title, err)
		}
	}
	posts := NewBadgerBlogRepository(s.db)
	for _, p := range SeedPosts() {
		if err := posts.Create(p); err != nil {
			return false, fmt.Errorf("failed to seed post %q: %w", p.Title, err)
		}
	}
	messages := NewBadgerMessageRepository(s.db)
	for _, m := range SeedMessages() {
		if err := messages.Create(m); err != nil {
			return false, fmt.Errorf("failed to seed message from %q: %w", m.Name, err)
		}
	}
	return true, nil
}
