package memory

import (
	"sort"

	"github.com/eventodb/streamstore/internal/store"
)

// positionIndex maps a key (stream or category name) to the ascending global
// positions of the messages filed under it. Entries are only ever appended.
type positionIndex struct {
	name string // for invariant reports
	idx  map[string][]uint64
}

func newPositionIndex(name string) *positionIndex {
	return &positionIndex{
		name: name,
		idx:  make(map[string][]uint64),
	}
}

// writePosition appends position to key. position must be greater than every
// position already held for key.
func (p *positionIndex) writePosition(key string, position uint64) {
	positions := p.idx[key]
	if n := len(positions); n > 0 && positions[n-1] >= position {
		panic(store.NewInvariantViolation(p.name, key,
			"position %d not after %d", position, positions[n-1]))
	}
	p.idx[key] = append(positions, position)
}

// getAll returns every position for key, or nil if key is unknown.
func (p *positionIndex) getAll(key string) []uint64 {
	return p.idx[key]
}

// getFrom returns the positions for key that are >= offset.
// Lookup is a binary search over the ascending list.
func (p *positionIndex) getFrom(key string, offset uint64) []uint64 {
	positions := p.idx[key]
	if offset == 0 {
		return positions
	}
	start := sort.Search(len(positions), func(i int) bool {
		return positions[i] >= offset
	})
	return positions[start:]
}

// last returns the most recent position for key.
func (p *positionIndex) last(key string) (uint64, bool) {
	positions := p.idx[key]
	if len(positions) == 0 {
		return 0, false
	}
	return positions[len(positions)-1], true
}

// keys is the number of distinct keys in the index.
func (p *positionIndex) keys() int {
	return len(p.idx)
}
