package store

import (
	"time"

	"github.com/google/uuid"
)

// Operation names used in change events, metrics and logs.
const (
	OpQuery    = "query"
	OpGet      = "get"
	OpGetWhere = "get_where"
	OpInsert   = "insert"
	OpUpdate   = "update"
	OpRemove   = "remove"
)

// rawTable labels operations that carry no table name.
const rawTable = "(raw)"

// ChangeEvent describes one successful insert, update or remove.
type ChangeEvent struct {
	ID           string    `json:"id"`
	Operation    string    `json:"operation"`
	Table        string    `json:"table"`
	InsertID     int64     `json:"insert_id,omitempty"`
	RowsAffected int64     `json:"rows_affected"`
	Timestamp    time.Time `json:"timestamp"`
}

func newChangeEvent(op, table string, insertID, rowsAffected int64) ChangeEvent {
	return ChangeEvent{
		ID:           uuid.NewString(),
		Operation:    op,
		Table:        table,
		InsertID:     insertID,
		RowsAffected: rowsAffected,
		Timestamp:    time.Now().UTC(),
	}
}

// Observer receives change events after mutations succeed.
// OnChange runs on the operation's goroutine and should not block for long.
type Observer interface {
	OnChange(ev ChangeEvent)
}

// Recorder receives the duration and outcome of every executed statement.
type Recorder interface {
	RecordOperation(op, table string, d time.Duration, err error)
}

// Logger defines the logging interface used by the service.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopObserver struct{}

func (noopObserver) OnChange(ChangeEvent) {}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(string, string, time.Duration, error) {}
