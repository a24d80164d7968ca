package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	applyTimeout   = 3 * time.Second
)

// mirrorOp is one pending mirror mutation. A nil user means delete.
type mirrorOp struct {
	sessionID string
	user      *domain.User
}

// MirrorFlusher drains user-snapshot writes to the mirror on a fixed set
// of workers, sharded by session id so each session's writes apply in
// order. Enqueueing never blocks: when a worker's buffer is full the op is
// dropped, which is acceptable for a side channel with no read authority.
type MirrorFlusher struct {
	workers []chan mirrorOp
	mirror  ports.UserMirror
	log     zerolog.Logger
}

var _ ports.MirrorQueue = (*MirrorFlusher)(nil)

// NewMirrorFlusher creates a flusher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMirrorFlusher(numWorkers int, mirror ports.UserMirror, log zerolog.Logger) *MirrorFlusher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	f := &MirrorFlusher{
		workers: make([]chan mirrorOp, numWorkers),
		mirror:  mirror,
		log:     log,
	}
	for i := range f.workers {
		f.workers[i] = make(chan mirrorOp, channelBuffer)
	}
	return f
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (f *MirrorFlusher) Start(ctx context.Context) {
	for i, ch := range f.workers {
		go f.runWorker(ctx, i, ch)
	}
}

func (f *MirrorFlusher) EnqueueWrite(sessionID string, user *domain.User) {
	f.enqueue(mirrorOp{sessionID: sessionID, user: user})
}

func (f *MirrorFlusher) EnqueueDelete(sessionID string) {
	f.enqueue(mirrorOp{sessionID: sessionID})
}

func (f *MirrorFlusher) enqueue(op mirrorOp) {
	select {
	case f.workers[f.shardIndex(op.sessionID)] <- op:
	default:
		metrics.MirrorOpsTotal.WithLabelValues(opLabel(op), "dropped").Inc()
		f.log.Warn().Str("session_id", op.sessionID).Msg("mirror queue full, dropping op")
	}
}

func (f *MirrorFlusher) runWorker(ctx context.Context, id int, ch <-chan mirrorOp) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-ch:
			f.apply(op)
		}
	}
}

func (f *MirrorFlusher) apply(op mirrorOp) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	var err error
	if op.user == nil {
		err = f.mirror.Delete(ctx, op.sessionID)
	} else {
		err = f.mirror.Write(ctx, op.sessionID, op.user)
	}

	if err != nil {
		metrics.MirrorOpsTotal.WithLabelValues(opLabel(op), "error").Inc()
		f.log.Warn().Err(err).Str("session_id", op.sessionID).Msg("mirror op failed")
		return
	}
	metrics.MirrorOpsTotal.WithLabelValues(opLabel(op), "ok").Inc()
}

func (f *MirrorFlusher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(f.workers)))
}

func opLabel(op mirrorOp) string {
	if op.user == nil {
		return "delete"
	}
	return "write"
}
