package memory_test

import (
	"fmt"
	"testing"

	"github.com/eventodb/streamstore/internal/store"
	"github.com/eventodb/streamstore/internal/store/memory"
)

// seedForBenchmark writes perStream messages to each of streams streams in
// category "account", interleaved.
func seedForBenchmark(b *testing.B, streams, perStream int) *memory.MemoryStore {
	b.Helper()
	st := memory.New(nil)
	for msgIdx := 0; msgIdx < perStream; msgIdx++ {
		for streamIdx := 0; streamIdx < streams; streamIdx++ {
			name := fmt.Sprintf("account-%d", streamIdx)
			res, err := st.WriteToStream(name, st.StreamVersion(name), []store.Message{
				{Type: "AccountEvent", Payload: []byte(fmt.Sprintf(`{"sequence":%d}`, msgIdx))},
			})
			if err != nil || !res.Ok() {
				b.Fatalf("WriteToStream failed: %v", err)
			}
		}
	}
	return st
}

// BenchmarkWriteToStream benchmarks single-message writes to new streams
func BenchmarkWriteToStream(b *testing.B) {
	st := memory.New(nil)
	payload := []byte(`{"accountId":1,"name":"Test Account"}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := st.WriteToStream(fmt.Sprintf("account-%d", i), store.NoStream, []store.Message{
			{Type: "AccountCreated", Payload: payload},
		})
		if err != nil {
			b.Fatalf("WriteToStream failed: %v", err)
		}
	}
}

// BenchmarkWriteToStream_Parallel benchmarks contended writers on distinct streams
func BenchmarkWriteToStream_Parallel(b *testing.B) {
	st := memory.New(nil)
	payload := []byte(`{"accountId":1}`)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		name := fmt.Sprintf("account-%p", pb)
		version := store.NoStream
		for pb.Next() {
			res, err := st.WriteToStream(name, version, []store.Message{{Type: "Tick", Payload: payload}})
			if err != nil || !res.Ok() {
				b.Errorf("WriteToStream failed: %v", err)
				return
			}
			version = store.Revision(res.Position.StreamRevision)
		}
	})
}

// BenchmarkReadFromStream benchmarks replaying a 100-message stream
func BenchmarkReadFromStream(b *testing.B) {
	st := seedForBenchmark(b, 10, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, msgs := st.ReadFromStream("account-3", store.Forward)
		if len(msgs) != 100 {
			b.Fatalf("Expected 100 messages, got %d", len(msgs))
		}
	}
}

// BenchmarkReadFromCategory_Offset benchmarks paging into the middle of a
// large category
func BenchmarkReadFromCategory_Offset(b *testing.B) {
	st := seedForBenchmark(b, 100, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		msgs := st.ReadFromCategory("account", 5000, 100)
		if len(msgs) != 100 {
			b.Fatalf("Expected 100 messages, got %d", len(msgs))
		}
	}
}
