package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

var errSessionClosed = errors.New("session closed")

// Options configures a Session
type Options struct {
	Driver string
	Path   string
	Logger *slog.Logger
}

// Session owns the lazily opened database shared by the pair and meta stores.
// It also carries the version counter used as a change signal.
type Session struct {
	driver string
	path   string
	logger *slog.Logger

	opening singleflight.Group

	mu     sync.RWMutex
	db     *sql.DB
	closed bool

	version atomic.Uint64

	observersMu  sync.Mutex
	observers    map[uint64]func(uint64)
	nextObserver uint64
}

var _ dataset.Store = (*Session)(nil)

// NewSession creates a session; the database is opened on first use
func NewSession(opts Options) *Session {
	driver := opts.Driver
	if driver == "" {
		driver = DriverCGo
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		driver:    driver,
		path:      opts.Path,
		logger:    logger,
		observers: make(map[uint64]func(uint64)),
	}
}

// EnsureOpen returns the database handle, opening and initializing it on the
// first call. Concurrent first callers share one initialization, which is not
// cut short when the caller that started it is cancelled.
func (s *Session) EnsureOpen(ctx context.Context) (*sql.DB, error) {
	if db, err := s.current(); db != nil || err != nil {
		return db, err
	}

	v, err, _ := s.opening.Do("open", func() (any, error) {
		if db, err := s.current(); db != nil || err != nil {
			return db, err
		}

		db, err := NewSQLiteDB(context.WithoutCancel(ctx), s.driver, s.path)
		if err != nil {
			s.logger.Error("store initialization failed", "driver", s.driver, "path", s.path, "err", err)
			return nil, fmt.Errorf("%w: %w", dataset.ErrStoreUnavailable, err)
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			db.Close()
			return nil, fmt.Errorf("%w: %w", dataset.ErrStoreUnavailable, errSessionClosed)
		}
		s.db = db
		s.mu.Unlock()

		version := s.MarkChanged()
		s.logger.Info("store opened", "driver", s.driver, "path", s.path, "version", version)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

func (s *Session) current() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("%w: %w", dataset.ErrStoreUnavailable, errSessionClosed)
	}
	return s.db, nil
}

// Open initializes the store if it is not open yet
func (s *Session) Open(ctx context.Context) error {
	_, err := s.EnsureOpen(ctx)
	return err
}

// Close releases the database handle. The session cannot be reopened.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Session) connect(ctx context.Context) (querier, error) {
	db, err := s.EnsureOpen(ctx)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Pairs returns a pair repository that opens the store on demand
func (s *Session) Pairs() pair.Repository {
	return &pairRepository{conn: s.connect}
}

// Meta returns a meta repository that opens the store on demand
func (s *Session) Meta() meta.Repository {
	return &metaRepository{conn: s.connect}
}

// Update runs fn inside one transaction. The transaction is committed only
// when fn returns nil; any error or panic rolls it back.
func (s *Session) Update(ctx context.Context, fn dataset.TxFunc) error {
	return s.inTx(ctx, fn, true)
}

// View runs fn inside a transaction that is always rolled back, giving it a
// consistent snapshot of both tables
func (s *Session) View(ctx context.Context, fn dataset.TxFunc) error {
	return s.inTx(ctx, fn, false)
}

func (s *Session) inTx(ctx context.Context, fn dataset.TxFunc, commit bool) error {
	db, err := s.EnsureOpen(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	conn := txConnector(tx)
	if err := fn(&pairRepository{conn: conn}, &metaRepository{conn: conn}); err != nil {
		return err
	}

	if !commit {
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Version returns the number of change events seen so far
func (s *Session) Version() uint64 {
	return s.version.Load()
}

// MarkChanged increments the version and notifies observers synchronously
func (s *Session) MarkChanged() uint64 {
	version := s.version.Add(1)

	s.observersMu.Lock()
	observers := make([]func(uint64), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observersMu.Unlock()

	for _, fn := range observers {
		fn(version)
	}
	return version
}

// Subscribe registers fn to be called with the new version after each change
func (s *Session) Subscribe(fn func(version uint64)) (cancel func()) {
	s.observersMu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.observersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.observersMu.Lock()
			delete(s.observers, id)
			s.observersMu.Unlock()
		})
	}
}
