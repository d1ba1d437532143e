package memory

import (
	"fmt"

	"github.com/eventodb/streamstore/internal/store"
)

// WriteToStream appends a batch of messages to a stream under optimistic
// concurrency control
func (s *MemoryStore) WriteToStream(streamName string, expected store.StreamVersion, messages []store.Message) (store.WriteResult, error) {
	defer s.reportInvariantViolation("write")

	if streamName == "" {
		return store.WriteResult{}, store.ErrInvalidStreamName
	}
	if len(messages) == 0 {
		return store.WriteResult{}, fmt.Errorf("%w: stream %s", store.ErrEmptyBatch, streamName)
	}

	category := s.category(streamName)

	// Everything that can fail or allocate happens before the locks are taken,
	// so a failure here leaves the store untouched.
	pending := make([]store.StoredMessage, len(messages))
	for i, msg := range messages {
		id, err := s.ids.NewID()
		if err != nil {
			return store.WriteResult{}, fmt.Errorf("failed to generate id for stream %s: %w", streamName, err)
		}
		var payload []byte
		if msg.Payload != nil {
			payload = make([]byte, len(msg.Payload))
			copy(payload, msg.Payload)
		}
		pending[i] = store.StoredMessage{
			ID:         id,
			StreamName: streamName,
			Type:       msg.Type,
			Payload:    payload,
		}
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.streamsMu.Lock()
	defer s.streamsMu.Unlock()
	s.categoriesMu.Lock()
	defer s.categoriesMu.Unlock()
	s.revisionsMu.Lock()
	defer s.revisionsMu.Unlock()

	current := s.revisions.version(streamName)
	if current != expected {
		s.metrics.ObserveConflict()
		s.logger.Debug().
			Str("stream", streamName).
			Stringer("expected", expected).
			Stringer("actual", current).
			Msg("Rejected write: wrong expected version")
		return store.Conflict(expected, current), nil
	}

	now := s.clock().UTC()
	revision := current.NextRevision()

	var last store.MessagePosition
	for _, msg := range pending {
		msg.Position = store.MessagePosition{
			GlobalPosition: s.log.len(),
			StreamRevision: revision,
		}
		msg.Time = now

		gp := s.log.append(msg)
		s.streams.writePosition(streamName, gp)
		s.categories.writePosition(category, gp)
		s.revisions.set(streamName, revision)

		last = msg.Position
		revision++
	}

	s.metrics.ObserveCommit(len(pending), s.log.len())
	s.logger.Debug().
		Str("stream", streamName).
		Str("category", category).
		Int("count", len(pending)).
		Uint64("global_position", last.GlobalPosition).
		Uint64("revision", last.StreamRevision).
		Msg("Committed write")

	return store.Committed(last), nil
}
