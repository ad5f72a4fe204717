package snapshot

import (
	"context"
	"log/slog"

	"smartcommute/internal/account"
	"smartcommute/internal/platform/metrics"
)

// Writer persists directory snapshots off the request path. Inserts hand it
// the full record set via Enqueue; a single goroutine (Run) writes the most
// recent set it has seen. Persistence is best effort: failures are logged
// and counted, never surfaced to the insert that triggered them.
type Writer struct {
	path    string
	logger  *slog.Logger
	metrics *metrics.Metrics
	pending chan []account.User
}

// NewWriter builds a snapshot writer for the given file. metrics may be nil.
func NewWriter(path string, logger *slog.Logger, m *metrics.Metrics) *Writer {
	return &Writer{
		path:    path,
		logger:  logger,
		metrics: m,
		pending: make(chan []account.User, 1),
	}
}

// Enqueue hands a record set to the writer without blocking. Only the
// latest set matters, so an unwritten older set is discarded rather than
// making the caller wait.
func (w *Writer) Enqueue(records []account.User) {
	for {
		select {
		case w.pending <- records:
			return
		default:
		}
		select {
		case <-w.pending:
		default:
		}
	}
}

// Run consumes snapshots until ctx is canceled, then flushes any pending
// set before returning. It always returns nil: snapshot failures are not a
// reason to tear the process down.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			select {
			case records := <-w.pending:
				w.write(records)
			default:
			}
			return nil
		case records := <-w.pending:
			w.write(records)
		}
	}
}

func (w *Writer) write(records []account.User) {
	if err := WriteUsers(w.path, records); err != nil {
		w.logger.Error("user snapshot write failed",
			"path", w.path,
			"records", len(records),
			"error", err.Error(),
		)
		if w.metrics != nil {
			w.metrics.IncrementSnapshotFailures()
		}
		return
	}
	w.logger.Debug("user snapshot written", "path", w.path, "records", len(records))
}
