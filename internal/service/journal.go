package service

import (
	"context"
	"sync"
	"time"

	"github.com/omerorhan/currency-converter/internal/storage"
	"go.uber.org/zap"
)

// Journal receives the persistence deltas of a TrackedSet. Calls must not
// block on the durable write.
type Journal interface {
	Insert(code CurrencyCode)
	Delete(code CurrencyCode)
}

type journalOpKind int

const (
	opInsert journalOpKind = iota
	opDelete
)

func (k journalOpKind) String() string {
	if k == opInsert {
		return "insert"
	}
	return "delete"
}

type journalOp struct {
	kind journalOpKind
	code CurrencyCode
}

// storeJournal applies journal ops to a storage.Store from a single goroutine,
// in issue order. Failures are logged and dropped.
type storeJournal struct {
	store   storage.Store
	timeout time.Duration
	logger  *zap.SugaredLogger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []journalOp
	busy    bool
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newStoreJournal(store storage.Store, timeout time.Duration, logger *zap.SugaredLogger) *storeJournal {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &storeJournal{
		store:   store,
		timeout: timeout,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	j.cond = sync.NewCond(&j.mu)

	j.wg.Add(1)
	go j.run()
	return j
}

func (j *storeJournal) Insert(code CurrencyCode) { j.enqueue(journalOp{kind: opInsert, code: code}) }
func (j *storeJournal) Delete(code CurrencyCode) { j.enqueue(journalOp{kind: opDelete, code: code}) }

func (j *storeJournal) enqueue(op journalOp) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		j.logger.Warnf("journal closed, dropping %s %s", op.kind, op.code)
		return
	}
	j.pending = append(j.pending, op)
	j.cond.Broadcast()
}

func (j *storeJournal) run() {
	defer j.wg.Done()

	for {
		j.mu.Lock()
		for len(j.pending) == 0 && !j.closed {
			j.cond.Wait()
		}
		if len(j.pending) == 0 {
			j.mu.Unlock()
			return
		}
		op := j.pending[0]
		j.pending = j.pending[1:]
		j.busy = true
		j.mu.Unlock()

		j.apply(op)

		j.mu.Lock()
		j.busy = false
		j.cond.Broadcast()
		j.mu.Unlock()
	}
}

func (j *storeJournal) apply(op journalOp) {
	ctx, cancel := context.WithTimeout(j.ctx, j.timeout)
	defer cancel()

	var err error
	switch op.kind {
	case opInsert:
		err = j.store.Insert(ctx, op.code)
	case opDelete:
		err = j.store.Delete(ctx, op.code)
	}
	if err != nil {
		j.logger.Warnf("failed to persist %s %s: %v", op.kind, op.code, err)
		return
	}
	j.logger.Debugf("persisted %s %s", op.kind, op.code)
}

// Flush blocks until every op issued so far has been applied.
func (j *storeJournal) Flush() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for len(j.pending) > 0 || j.busy {
		j.cond.Wait()
	}
}

// Close drains pending ops and stops the writer. Later ops are dropped.
func (j *storeJournal) Close() {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return
	}
	j.closed = true
	j.cond.Broadcast()
	j.mu.Unlock()

	j.wg.Wait()
	j.cancel()
}
