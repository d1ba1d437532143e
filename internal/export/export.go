// Package export writes a snapshot of a message store as NDJSON, one record
// per message in global position order.
//
// Record format:
//
//	{"id":"…","stream":"account-1","type":"Opened","pos":0,"gpos":0,"data":"<base64>","time":"…"}
//
// Output can be S2-compressed (github.com/klauspost/compress/s2 stream format).
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/s2"

	"github.com/eventodb/streamstore/internal/logger"
	"github.com/eventodb/streamstore/internal/store"
)

// json is the jsoniter instance configured to be compatible with standard library
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBatchSize = 1000

// Source is the read surface an export pages through
type Source interface {
	ReadAll(offset uint64, limit int) []store.StoredMessage
	ReadFromCategory(categoryName string, offset uint64, limit int) []store.StoredMessage
}

// Options configures an export
type Options struct {
	Categories []string // empty = all messages
	BatchSize  int      // messages per page (default: 1000)
	Compress   bool     // wrap output in an S2 stream
}

// Record represents the NDJSON format for export
type Record struct {
	ID       string `json:"id"`
	Stream   string `json:"stream"`
	Type     string `json:"type"`
	Position uint64 `json:"pos"`
	GPos     uint64 `json:"gpos"`
	Data     []byte `json:"data"`
	Time     string `json:"time"`
}

// NewRecord converts a stored message to its export form
func NewRecord(msg store.StoredMessage) Record {
	return Record{
		ID:       msg.ID,
		Stream:   msg.StreamName,
		Type:     msg.Type,
		Position: msg.Position.StreamRevision,
		GPos:     msg.Position.GlobalPosition,
		Data:     msg.Payload,
		Time:     msg.Time.UTC().Format(time.RFC3339Nano),
	}
}

// Export writes every message selected by opts to w and returns how many
// were written. ctx is checked between pages.
func Export(ctx context.Context, src Source, w io.Writer, opts *Options) (int64, error) {
	if opts == nil {
		opts = &Options{}
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	log := logger.WithComponent(logger.FromContext(ctx), "export")

	out := w
	var compressor *s2.Writer
	if opts.Compress {
		compressor = s2.NewWriter(w)
		out = compressor
	}

	encoder := json.NewEncoder(out)
	var count int64
	emit := func(msg store.StoredMessage) error {
		if err := encoder.Encode(NewRecord(msg)); err != nil {
			return fmt.Errorf("failed to encode message at gp=%d: %w", msg.Position.GlobalPosition, err)
		}
		count++
		return nil
	}

	var err error
	if len(opts.Categories) == 0 {
		err = exportAll(ctx, src, batchSize, emit)
	} else {
		err = exportCategories(ctx, src, opts.Categories, batchSize, emit)
	}
	if err != nil {
		if compressor != nil {
			if closeErr := compressor.Close(); closeErr != nil {
				log.Debug().Err(closeErr).Int64("messages", count).Msg("Failed to close compressed output")
			}
		}
		return count, err
	}

	if compressor != nil {
		if err := compressor.Close(); err != nil {
			return count, fmt.Errorf("failed to flush compressed output: %w", err)
		}
	}

	log.Info().
		Int64("messages", count).
		Strs("categories", opts.Categories).
		Bool("compressed", opts.Compress).
		Msg("Export complete")

	return count, nil
}

func exportAll(ctx context.Context, src Source, batchSize int, emit func(store.StoredMessage) error) error {
	var offset uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page := src.ReadAll(offset, batchSize)
		for _, msg := range page {
			if err := emit(msg); err != nil {
				return err
			}
		}
		if len(page) < batchSize {
			return nil
		}
		offset = page[len(page)-1].Position.GlobalPosition + 1
	}
}

// categoryCursor pages through one category
type categoryCursor struct {
	name   string
	buf    []store.StoredMessage
	offset uint64
	done   bool
}

func (c *categoryCursor) fill(src Source, batchSize int) {
	if len(c.buf) > 0 || c.done {
		return
	}
	c.buf = src.ReadFromCategory(c.name, c.offset, batchSize)
	if len(c.buf) < batchSize {
		c.done = true
	}
	if len(c.buf) > 0 {
		c.offset = c.buf[len(c.buf)-1].Position.GlobalPosition + 1
	}
}

// exportCategories merges the selected categories by global position
func exportCategories(ctx context.Context, src Source, categories []string, batchSize int, emit func(store.StoredMessage) error) error {
	seen := make(map[string]bool, len(categories))
	cursors := make([]*categoryCursor, 0, len(categories))
	for _, name := range categories {
		if seen[name] {
			continue
		}
		seen[name] = true
		cursors = append(cursors, &categoryCursor{name: name})
	}

	for {
		var next *categoryCursor
		for _, c := range cursors {
			if len(c.buf) == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.fill(src, batchSize)
			}
			if len(c.buf) == 0 {
				continue
			}
			if next == nil || c.buf[0].Position.GlobalPosition < next.buf[0].Position.GlobalPosition {
				next = c
			}
		}
		if next == nil {
			return nil
		}

		if err := emit(next.buf[0]); err != nil {
			return err
		}
		next.buf = next.buf[1:]
	}
}
