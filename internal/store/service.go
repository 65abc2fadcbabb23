package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nerrad567/localstore/internal/bridge"
)

// Gate is the readiness signal operations wait on.
// readiness.Gate satisfies it.
type Gate interface {
	Ready(fn func())
}

// Options configures a Service.
type Options struct {
	// Name is the database opened once when the gate fires.
	Name string

	Gate     Gate
	Opener   bridge.Opener
	Executor bridge.Executor

	// Optional collaborators; no-ops when nil.
	Logger   Logger
	Observer Observer
	Recorder Recorder
}

// Service is the CRUD facade over one shared database handle.
//
// Every operation returns at once. Work starts when the readiness gate
// fires; operations issued earlier queue behind it. The handle is opened
// by the first gate callback, registered in New, so it is in place before
// any queued operation runs.
//
// Thread Safety: All methods are safe for concurrent use.
type Service struct {
	name     string
	gate     Gate
	opener   bridge.Opener
	executor bridge.Executor
	logger   Logger
	observer Observer
	recorder Recorder

	handle  atomic.Pointer[bridge.Handle]
	openErr atomic.Pointer[error]

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Service and schedules the handle to open on readiness.
func New(opts Options) (*Service, error) {
	if opts.Name == "" || opts.Gate == nil || opts.Opener == nil || opts.Executor == nil {
		return nil, fmt.Errorf("%w: name, gate, opener and executor are required", ErrInvalidOptions)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		name:     opts.Name,
		gate:     opts.Gate,
		opener:   opts.Opener,
		executor: opts.Executor,
		logger:   opts.Logger,
		observer: opts.Observer,
		recorder: opts.Recorder,
		ctx:      ctx,
		cancel:   cancel,
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}
	if s.observer == nil {
		s.observer = noopObserver{}
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}

	s.gate.Ready(s.openHandle)
	return s, nil
}

// openHandle runs once, as the first readiness callback.
// A handle opened after Close is closed again instead of published.
func (s *Service) openHandle() {
	if s.isClosed() {
		return
	}

	h, err := s.opener.Open(s.ctx, s.name)
	if err != nil {
		s.openErr.Store(&err)
		s.logger.Error("opening database handle failed", "name", s.name, "error", err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if err := h.Close(); err != nil {
			s.logger.Warn("closing handle opened after close failed", "name", s.name, "error", err)
		}
		return
	}
	s.handle.Store(h)
	s.mu.Unlock()

	s.logger.Info("database handle opened", "name", s.name)
}

// Handle returns the shared handle, or nil before readiness or after a
// failed open.
func (s *Service) Handle() *bridge.Handle {
	return s.handle.Load()
}

// Query executes sqlText as given.
// The promise settles with the raw ResultSet or the raw bridge error.
func (s *Service) Query(sqlText string) *bridge.Promise[*bridge.ResultSet] {
	return s.dispatch(OpQuery, rawTable, func() (string, error) {
		return sqlText, nil
	})
}

// Get selects every row of table.
func (s *Service) Get(table string) *bridge.Promise[Selection] {
	return toSelection(s.dispatch(OpGet, table, func() (string, error) {
		return selectAllSQL(table), nil
	}))
}

// GetWhere selects the rows of table matching condition.
// condition is inserted into the statement unescaped.
func (s *Service) GetWhere(table, condition string) *bridge.Promise[Selection] {
	return toSelection(s.dispatch(OpGetWhere, table, func() (string, error) {
		return selectWhereSQL(table, condition), nil
	}))
}

func toSelection(p *bridge.Promise[*bridge.ResultSet]) *bridge.Promise[Selection] {
	return bridge.Map(p, func(rs *bridge.ResultSet, err error) (Selection, error) {
		if err != nil {
			return Selection{}, err
		}
		return newSelection(rs), nil
	})
}

// Insert adds record to table and settles with the new row id.
// Any failure settles with ErrInsertFailed alone.
func (s *Service) Insert(table string, record Record) *bridge.Promise[int64] {
	p := s.dispatch(OpInsert, table, func() (string, error) {
		return insertSQL(table, record), nil
	})

	out := bridge.Map(p, func(rs *bridge.ResultSet, err error) (int64, error) {
		if err != nil {
			s.logger.Warn("insert failed", "table", table, "error", err)
			return 0, ErrInsertFailed
		}
		return rs.InsertID, nil
	})
	s.notifyOnSuccess(p, OpInsert, table)
	return out
}

// InsertBatch is not implemented. It returns ErrNotImplemented at once
// without waiting for readiness or touching the database.
func (s *Service) InsertBatch(table string, records []Record) error {
	return ErrNotImplemented
}

// Update sets every field of record on the row whose id matches
// record's id field. The id field is part of the SET list too.
func (s *Service) Update(table string, record Record) *bridge.Promise[*bridge.ResultSet] {
	p := s.dispatch(OpUpdate, table, func() (string, error) {
		id, ok := record.Get("id")
		if !ok {
			return "", ErrMissingID
		}
		return updateSQL(table, record, id), nil
	})
	s.notifyOnSuccess(p, OpUpdate, table)
	return p
}

// Remove deletes the rows of table matching condition.
func (s *Service) Remove(table, condition string) *bridge.Promise[*bridge.ResultSet] {
	p := s.dispatch(OpRemove, table, func() (string, error) {
		return deleteWhereSQL(table, condition), nil
	})
	s.notifyOnSuccess(p, OpRemove, table)
	return p
}

// dispatch queues one statement behind the readiness gate.
// build runs on the operation goroutine once the gate has fired.
func (s *Service) dispatch(op, table string, build func() (string, error)) *bridge.Promise[*bridge.ResultSet] {
	if s.isClosed() {
		return bridge.Rejected[*bridge.ResultSet](ErrClosed)
	}

	p, settle := bridge.NewPromise[*bridge.ResultSet]()
	s.gate.Ready(func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			settle(nil, ErrClosed)
			return
		}
		s.wg.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.wg.Done()
			settle(s.execute(op, table, build))
		}()
	})
	return p
}

func (s *Service) execute(op, table string, build func() (string, error)) (*bridge.ResultSet, error) {
	sqlText, err := build()
	if err != nil {
		return nil, err
	}

	h := s.handle.Load()
	if h == nil {
		return nil, s.handleError()
	}

	start := time.Now()
	rs, err := s.executor.Execute(s.ctx, h, sqlText).Await(s.ctx)
	s.recorder.RecordOperation(op, table, time.Since(start), err)

	if err != nil {
		s.logger.Debug("operation failed", "operation", op, "table", table, "error", err)
		return nil, err
	}
	return rs, nil
}

func (s *Service) handleError() error {
	if errp := s.openErr.Load(); errp != nil {
		return fmt.Errorf("%w: %w", bridge.ErrNoHandle, *errp)
	}
	return bridge.ErrNoHandle
}

// notifyOnSuccess emits a change event once p settles without error.
// Registered after the caller-facing mapping so callers see results first.
func (s *Service) notifyOnSuccess(p *bridge.Promise[*bridge.ResultSet], op, table string) {
	p.Then(func(rs *bridge.ResultSet, err error) {
		if err != nil || rs == nil {
			return
		}
		var insertID int64
		if op == OpInsert {
			insertID = rs.InsertID
		}
		s.observer.OnChange(newChangeEvent(op, table, insertID, rs.RowsAffected))
	})
}

// HealthCheck pings the shared handle's database.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	h := s.handle.Load()
	if h == nil || h.DB() == nil {
		return s.handleError()
	}
	return h.DB().HealthCheck(ctx)
}

func (s *Service) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops accepting operations, cancels running statements, waits for
// them and closes the handle. Operations still queued behind a gate that
// never fires stay pending.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	if h := s.handle.Swap(nil); h != nil {
		if err := h.Close(); err != nil {
			return fmt.Errorf("closing handle: %w", err)
		}
	}
	return nil
}
