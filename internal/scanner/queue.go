package scanner

import (
	"log/slog"
	"strings"
	"sync"

	"tagsight/internal/logging"
)

const defaultQueueSize = 32

// Queue is a bounded buffer of decoded task codes awaiting lookup. A full
// queue drops new codes rather than blocking the input source; a scanner
// outpacing the backend by that margin means something else is wrong.
type Queue struct {
	codes  chan string
	logger *slog.Logger

	closeOnce sync.Once
}

// NewQueue creates a code queue. size <= 0 selects the default capacity.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Queue{
		codes:  make(chan string, size),
		logger: logging.NewComponentLogger(logger, "scanner"),
	}
}

// Submit offers a decoded code to the queue, reporting whether it was
// accepted. Blank codes and overflow are rejected.
func (q *Queue) Submit(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	select {
	case q.codes <- code:
		return true
	default:
		q.logger.Warn("scan queue full, dropping code",
			logging.String(logging.FieldTaskCode, code),
			logging.Int("capacity", cap(q.codes)))
		return false
	}
}

// Codes exposes the stream of pending codes in submission order.
func (q *Queue) Codes() <-chan string {
	return q.codes
}

// Pending reports how many codes are waiting.
func (q *Queue) Pending() int {
	return len(q.codes)
}

// Close stops the queue. Pending codes remain readable until drained.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.codes)
	})
}
