package memory

import (
	"github.com/eventodb/streamstore/internal/store"
)

// messageLog is the append-only sequence that owns every stored message.
// A message's global position is its index in the slice.
type messageLog struct {
	messages []store.StoredMessage
}

func newMessageLog() *messageLog {
	return &messageLog{}
}

// append stores msg and returns its global position. msg must already carry
// the position it will land at.
func (l *messageLog) append(msg store.StoredMessage) uint64 {
	pos := uint64(len(l.messages))
	if msg.Position.GlobalPosition != pos {
		panic(store.NewInvariantViolation("log", "",
			"message assigned global position %d but log length is %d", msg.Position.GlobalPosition, pos))
	}
	l.messages = append(l.messages, msg)
	return pos
}

// get dereferences a global position obtained from an index.
func (l *messageLog) get(pos uint64) store.StoredMessage {
	if pos >= uint64(len(l.messages)) {
		panic(store.NewInvariantViolation("log", "",
			"position %d out of range (length %d)", pos, len(l.messages)))
	}
	return l.messages[pos]
}

// len is the number of stored messages, which is also the next global position.
func (l *messageLog) len() uint64 {
	return uint64(len(l.messages))
}
