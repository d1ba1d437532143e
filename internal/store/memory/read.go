package memory

import (
	"slices"

	"github.com/eventodb/streamstore/internal/metrics"
	"github.com/eventodb/streamstore/internal/store"
)

// ReadFromStream retrieves every message of a stream
func (s *MemoryStore) ReadFromStream(streamName string, direction store.Direction) (store.StreamVersion, []store.StoredMessage) {
	defer s.reportInvariantViolation("read_stream")
	s.metrics.ObserveRead(metrics.PathStream)

	s.logMu.RLock()
	defer s.logMu.RUnlock()
	s.streamsMu.RLock()
	defer s.streamsMu.RUnlock()

	positions := s.streams.getAll(streamName)

	version := store.NoStream
	messages := make([]store.StoredMessage, 0, len(positions))
	for _, gp := range positions {
		msg := s.log.get(gp)
		if msg.StreamName != streamName || msg.Position.StreamRevision != version.NextRevision() {
			panic(store.NewInvariantViolation("stream index", streamName,
				"position %d holds %s revision %d, expected revision %d",
				gp, msg.StreamName, msg.Position.StreamRevision, version.NextRevision()))
		}
		version = store.Revision(msg.Position.StreamRevision)
		messages = append(messages, msg.Clone())
	}

	if direction == store.Backward {
		slices.Reverse(messages)
	}

	return version, messages
}

// ReadFromCategory retrieves messages from all streams in a category, in
// global position order, starting at offset (inclusive)
func (s *MemoryStore) ReadFromCategory(categoryName string, offset uint64, limit int) []store.StoredMessage {
	defer s.reportInvariantViolation("read_category")
	s.metrics.ObserveRead(metrics.PathCategory)

	s.logMu.RLock()
	defer s.logMu.RUnlock()
	s.categoriesMu.RLock()
	defer s.categoriesMu.RUnlock()

	positions := truncate(s.categories.getFrom(categoryName, offset), limit)

	messages := make([]store.StoredMessage, 0, len(positions))
	for _, gp := range positions {
		msg := s.log.get(gp)
		if got := s.category(msg.StreamName); got != categoryName {
			panic(store.NewInvariantViolation("category index", categoryName,
				"position %d holds stream %s of category %s", gp, msg.StreamName, got))
		}
		messages = append(messages, msg.Clone())
	}

	return messages
}

// ReadAll retrieves messages of every stream in global position order,
// starting at offset (inclusive)
func (s *MemoryStore) ReadAll(offset uint64, limit int) []store.StoredMessage {
	defer s.reportInvariantViolation("read_all")
	s.metrics.ObserveRead(metrics.PathAll)

	s.logMu.RLock()
	defer s.logMu.RUnlock()

	length := s.log.len()
	if offset >= length {
		return []store.StoredMessage{}
	}

	n := length - offset
	if limit >= 0 && uint64(limit) < n {
		n = uint64(limit)
	}

	messages := make([]store.StoredMessage, 0, n)
	for gp := offset; gp < offset+n; gp++ {
		msg := s.log.get(gp)
		if msg.Position.GlobalPosition != gp {
			panic(store.NewInvariantViolation("log", msg.StreamName,
				"slot %d holds global position %d", gp, msg.Position.GlobalPosition))
		}
		messages = append(messages, msg.Clone())
	}

	return messages
}

// LastStreamMessage retrieves the most recent message of a stream
func (s *MemoryStore) LastStreamMessage(streamName string) (store.StoredMessage, bool) {
	defer s.reportInvariantViolation("last_stream_message")

	s.logMu.RLock()
	defer s.logMu.RUnlock()
	s.streamsMu.RLock()
	defer s.streamsMu.RUnlock()

	gp, ok := s.streams.last(streamName)
	if !ok {
		return store.StoredMessage{}, false
	}
	return s.log.get(gp).Clone(), true
}

// truncate caps positions at limit entries; a negative limit keeps them all.
func truncate(positions []uint64, limit int) []uint64 {
	if limit >= 0 && limit < len(positions) {
		return positions[:limit]
	}
	return positions
}
