// Package store defines the message store contract: the types every backend
// shares and the read/write interfaces callers program against.
//
// A store holds a single append-only log of messages. Each message belongs to
// exactly one stream, and every stream belongs to a category derived from its
// name ("account-123" is in category "account"). Messages are addressed two
// ways: by their global position in the log, and by their revision within
// their own stream.
//
// Writes use optimistic concurrency control. A writer supplies the version it
// believes the stream is at; the batch is committed only if that belief holds.
//
// Basic usage:
//
//	st := memory.New(nil)
//
//	res, err := st.WriteToStream("account-123", store.NoStream, []store.Message{
//		{Type: "AccountOpened", Payload: []byte(`{"balance":0}`)},
//	})
//	if err != nil {
//		return err
//	}
//	if !res.Ok() {
//		// someone else wrote to the stream first; re-read and retry
//	}
//
//	version, messages := st.ReadFromStream("account-123", store.Forward)
package store

import (
	"fmt"
	"time"
)

// NoLimit requests an unbounded category or log read.
const NoLimit = -1

// StreamReader replays a single stream.
type StreamReader interface {
	// ReadFromStream returns every message of streamName together with the
	// stream's current version.
	//
	// Backward reverses the message order; the returned version is the same
	// in both directions. A stream that was never written yields NoStream and
	// an empty slice.
	ReadFromStream(streamName string, direction Direction) (StreamVersion, []StoredMessage)
}

// CategoryReader replays all streams of a category in commit order.
type CategoryReader interface {
	// ReadFromCategory returns messages of categoryName whose global position
	// is >= offset, in ascending global position order, truncated to limit
	// entries. A negative limit (NoLimit) is unbounded.
	ReadFromCategory(categoryName string, offset uint64, limit int) []StoredMessage
}

// StreamWriter appends batches to streams.
type StreamWriter interface {
	// WriteToStream appends messages to streamName if the stream is at
	// expected. The whole batch is committed with consecutive revisions and
	// global positions, or nothing is.
	//
	// A version mismatch is reported through the result (WrongExpectedVersion),
	// not the error. The error is reserved for invalid input and identifier
	// generation failures; in both cases the store is left unchanged.
	WriteToStream(streamName string, expected StreamVersion, messages []Message) (WriteResult, error)
}

// Store is the full operation surface of a message store backend.
type Store interface {
	StreamReader
	CategoryReader
	StreamWriter

	// StreamVersion returns the current version of streamName.
	StreamVersion(streamName string) StreamVersion

	// LastStreamMessage returns the most recent message of streamName.
	LastStreamMessage(streamName string) (StoredMessage, bool)

	// ReadAll returns messages of every stream from offset in global order.
	ReadAll(offset uint64, limit int) []StoredMessage

	// MessageCount returns the number of messages in the log.
	MessageCount() uint64

	// Category returns the category the store files streamName under.
	Category(streamName string) string
}

// Message is a caller-supplied message to be written. Its contents are copied
// on write; the caller may reuse the payload buffer afterwards.
type Message struct {
	Type    string
	Payload []byte
}

// MessagePosition locates a stored message both in the log and in its stream.
type MessagePosition struct {
	GlobalPosition uint64 // 0-based index in the log
	StreamRevision uint64 // 0-based index within the stream
}

// StoredMessage is a committed message. It is never modified once written.
type StoredMessage struct {
	ID         string
	StreamName string
	Type       string
	Payload    []byte
	Position   MessagePosition
	Time       time.Time // UTC commit time
}

// Direction selects the order of a stream read.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// StreamVersion is either NoStream or the latest revision of a stream.
// The zero value is NoStream. Values are comparable with ==.
type StreamVersion struct {
	revision uint64
	exists   bool
}

// NoStream is the version of a stream that has never been written.
var NoStream = StreamVersion{}

// Revision returns the version of a stream whose latest message has revision n.
func Revision(n uint64) StreamVersion {
	return StreamVersion{revision: n, exists: true}
}

// IsNoStream reports whether v is NoStream.
func (v StreamVersion) IsNoStream() bool {
	return !v.exists
}

// Revision returns the latest revision and true, or 0 and false for NoStream.
func (v StreamVersion) Revision() (uint64, bool) {
	return v.revision, v.exists
}

// NextRevision returns the revision the next message written to the stream
// will receive.
func (v StreamVersion) NextRevision() uint64 {
	if !v.exists {
		return 0
	}
	return v.revision + 1
}

func (v StreamVersion) String() string {
	if !v.exists {
		return "NoStream"
	}
	return fmt.Sprintf("Revision(%d)", v.revision)
}

// WriteOutcome tells whether a write batch was committed.
type WriteOutcome int

const (
	WriteOK WriteOutcome = iota
	WrongExpectedVersion
)

func (o WriteOutcome) String() string {
	switch o {
	case WriteOK:
		return "ok"
	case WrongExpectedVersion:
		return "wrong_expected_version"
	default:
		return fmt.Sprintf("WriteOutcome(%d)", int(o))
	}
}

// WriteResult is the outcome of WriteToStream.
type WriteResult struct {
	Outcome WriteOutcome

	// Position of the last message of the batch. Set only when Outcome is WriteOK.
	Position MessagePosition

	// Expected and Actual describe a rejected batch.
	Expected StreamVersion
	Actual   StreamVersion
}

// Ok reports whether the batch was committed.
func (r WriteResult) Ok() bool {
	return r.Outcome == WriteOK
}

// Err converts a rejected result into a *VersionConflictError. It returns nil
// for a committed batch.
func (r WriteResult) Err(streamName string) error {
	if r.Ok() {
		return nil
	}
	return NewVersionConflictError(streamName, r.Expected, r.Actual)
}

// Committed returns a result for a batch whose last message landed at pos.
func Committed(pos MessagePosition) WriteResult {
	return WriteResult{Outcome: WriteOK, Position: pos}
}

// Conflict returns a result for a batch rejected by the version check.
func Conflict(expected, actual StreamVersion) WriteResult {
	return WriteResult{Outcome: WrongExpectedVersion, Expected: expected, Actual: actual}
}

// Clone returns a copy of m that shares no memory with it.
func (m StoredMessage) Clone() StoredMessage {
	if m.Payload != nil {
		payload := make([]byte, len(m.Payload))
		copy(payload, m.Payload)
		m.Payload = payload
	}
	return m
}
