package memory

import (
	"github.com/eventodb/streamstore/internal/store"
)

// revisionTracker caches the latest revision of every stream so the version
// check on write does not need to walk the stream index.
type revisionTracker struct {
	revisions map[string]uint64
}

func newRevisionTracker() *revisionTracker {
	return &revisionTracker{revisions: make(map[string]uint64)}
}

func (r *revisionTracker) version(streamName string) store.StreamVersion {
	rev, ok := r.revisions[streamName]
	if !ok {
		return store.NoStream
	}
	return store.Revision(rev)
}

func (r *revisionTracker) set(streamName string, revision uint64) {
	r.revisions[streamName] = revision
}

func (r *revisionTracker) streams() int {
	return len(r.revisions)
}
