// Package memory provides an in-memory store.Store backend.
//
// Layout:
//   - log          append-only []StoredMessage, index = global position
//   - streams      stream name   → ascending global positions
//   - categories   category name → ascending global positions
//   - revisions    stream name   → latest revision (version check cache)
//
// Each structure has its own RWMutex. Writers lock all four, always in the
// order log, streams, categories, revisions, for the whole batch, so at most
// one write runs at a time. Readers read-lock the log and the one index they
// use, in the same order, and never block each other.
package memory

import (
	"errors"
	"sync"
	"time"

	"github.com/eventodb/streamstore/internal/logger"
	"github.com/eventodb/streamstore/internal/metrics"
	"github.com/eventodb/streamstore/internal/store"
	"github.com/rs/zerolog"
)

// Config configures a MemoryStore. Zero fields take defaults.
type Config struct {
	IDGenerator  store.IDGenerator  // default: store.UUIDGenerator
	CategoryFunc store.CategoryFunc // default: store.Category
	Logger       *zerolog.Logger    // default: logger.Get()
	Metrics      *metrics.StoreMetrics
	Clock        func() time.Time // default: time.Now
}

// MemoryStore implements store.Store in process memory
type MemoryStore struct {
	logMu        sync.RWMutex
	log          *messageLog
	streamsMu    sync.RWMutex
	streams      *positionIndex
	categoriesMu sync.RWMutex
	categories   *positionIndex
	revisionsMu  sync.RWMutex
	revisions    *revisionTracker

	ids      store.IDGenerator
	category store.CategoryFunc
	logger   *zerolog.Logger
	metrics  *metrics.StoreMetrics
	clock    func() time.Time
}

// Stats summarizes the size of the store
type Stats struct {
	Messages   uint64
	Streams    int
	Categories int
}

// New creates a MemoryStore. cfg may be nil.
func New(cfg *Config) *MemoryStore {
	if cfg == nil {
		cfg = &Config{}
	}

	s := &MemoryStore{
		log:        newMessageLog(),
		streams:    newPositionIndex("stream index"),
		categories: newPositionIndex("category index"),
		revisions:  newRevisionTracker(),
		ids:        cfg.IDGenerator,
		category:   cfg.CategoryFunc,
		metrics:    cfg.Metrics,
		clock:      cfg.Clock,
	}

	if s.ids == nil {
		s.ids = store.UUIDGenerator{}
	}
	if s.category == nil {
		s.category = store.Category
	}
	if s.clock == nil {
		s.clock = time.Now
	}

	base := cfg.Logger
	if base == nil {
		base = logger.Get()
	}
	s.logger = logger.WithComponent(base, "memory_store")

	return s
}

// Verify MemoryStore implements store.Store interface
var _ store.Store = (*MemoryStore)(nil)

// Category returns the category streamName is indexed under
func (s *MemoryStore) Category(streamName string) string {
	return s.category(streamName)
}

// StreamVersion returns the current version of a stream without touching the
// log or the indices.
func (s *MemoryStore) StreamVersion(streamName string) store.StreamVersion {
	s.revisionsMu.RLock()
	defer s.revisionsMu.RUnlock()

	return s.revisions.version(streamName)
}

// MessageCount returns the total number of messages in the store
func (s *MemoryStore) MessageCount() uint64 {
	s.logMu.RLock()
	defer s.logMu.RUnlock()

	return s.log.len()
}

// Stats returns a consistent snapshot of the store's size
func (s *MemoryStore) Stats() Stats {
	s.logMu.RLock()
	defer s.logMu.RUnlock()
	s.categoriesMu.RLock()
	defer s.categoriesMu.RUnlock()
	s.revisionsMu.RLock()
	defer s.revisionsMu.RUnlock()

	return Stats{
		Messages:   s.log.len(),
		Streams:    s.revisions.streams(),
		Categories: s.categories.keys(),
	}
}

// reportInvariantViolation logs a corrupted-state panic and lets it continue.
// It must be deferred before any lock is taken.
func (s *MemoryStore) reportInvariantViolation(op string) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, store.ErrInvariantViolation) {
		s.logger.Error().Err(err).Str("op", op).Msg("Store invariant violated")
	}
	panic(r)
}
