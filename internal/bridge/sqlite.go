package bridge

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/semaphore"

	"github.com/nerrad567/localstore/internal/infrastructure/database"
)

// Executor runs one SQL statement against an open handle.
type Executor interface {
	Execute(ctx context.Context, h *Handle, sqlText string) *Promise[*ResultSet]
}

// Opener acquires a database handle by name.
type Opener interface {
	Open(ctx context.Context, name string) (*Handle, error)
}

// Logger defines the logging interface used by the bridge.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Handle is one open database.
type Handle struct {
	name string
	db   *database.DB
}

// NewHandle wraps an already open database.
func NewHandle(name string, db *database.DB) *Handle {
	return &Handle{name: name, db: db}
}

// Name returns the database name the handle was opened with.
func (h *Handle) Name() string {
	return h.name
}

// DB returns the underlying database.
func (h *Handle) DB() *database.DB {
	return h.db
}

// Close closes the underlying database.
func (h *Handle) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Options configures how SQLite opens database files.
type Options struct {
	// Dir holds every database file opened by name.
	Dir string

	WALMode     bool
	BusyTimeout int
}

// SQLite executes statements against go-sqlite3 handles.
//
// Statements run on their own goroutines but are serialised through a
// weight-one semaphore: one statement at a time across all handles, the
// same model as a single native plugin connection.
type SQLite struct {
	opts   Options
	sem    *semaphore.Weighted
	logger Logger
}

// NewSQLite creates a SQLite bridge.
func NewSQLite(opts Options) *SQLite {
	return &SQLite{
		opts:   opts,
		sem:    semaphore.NewWeighted(1),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the bridge.
func (b *SQLite) SetLogger(logger Logger) {
	b.logger = logger
}

// Open opens (creating if needed) the database file name inside Options.Dir.
func (b *SQLite) Open(ctx context.Context, name string) (*Handle, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(b.opts.Dir, name),
		WALMode:     b.opts.WALMode,
		BusyTimeout: b.opts.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	return NewHandle(name, db), nil
}

// Execute runs sqlText against h and returns immediately.
// The promise settles with the statement's ResultSet or its error.
func (b *SQLite) Execute(ctx context.Context, h *Handle, sqlText string) *Promise[*ResultSet] {
	if h == nil || h.db == nil {
		return Rejected[*ResultSet](ErrNoHandle)
	}

	p, settle := NewPromise[*ResultSet]()
	go func() {
		settle(b.run(ctx, h, sqlText))
	}()
	return p
}

func (b *SQLite) run(ctx context.Context, h *Handle, sqlText string) (*ResultSet, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for connection: %w", err)
	}
	defer b.sem.Release(1)

	start := time.Now()
	var (
		rs  *ResultSet
		err error
	)
	if returnsRows(sqlText) {
		rs, err = query(ctx, h.db, sqlText)
	} else {
		rs, err = exec(ctx, h.db, sqlText)
	}
	if err != nil {
		b.logger.Warn("statement failed", "database", h.name, "error", err)
		return nil, fmt.Errorf("executing statement: %w", err)
	}

	b.logger.Debug("statement executed",
		"database", h.name,
		"rows", rs.Len(),
		"rows_affected", rs.RowsAffected,
		"duration", time.Since(start),
	)
	return rs, nil
}

func query(ctx context.Context, db *database.DB, sqlText string) (*ResultSet, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	rs := &ResultSet{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normaliseValue(values[i])
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return rs, nil
}

func exec(ctx context.Context, db *database.DB, sqlText string) (*ResultSet, error) {
	res, err := db.ExecContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}

	return resultSetFrom(res), nil
}

// resultSetFrom copies insert id and affected row count out of res.
// go-sqlite3 never fails either call, so errors are ignored.
func resultSetFrom(res sql.Result) *ResultSet {
	id, _ := res.LastInsertId()       //nolint:errcheck // sqlite3 always supports it
	affected, _ := res.RowsAffected() //nolint:errcheck // sqlite3 always supports it
	return &ResultSet{
		Rows:         []Row{},
		InsertID:     id,
		RowsAffected: affected,
	}
}

// normaliseValue converts driver values to the shapes callers see.
// BLOB and TEXT come back as string; DATETIME columns parsed by the driver
// are formatted back to text.
func normaliseValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return val
	}
}

// rowKeywords are leading keywords of statements that produce rows.
var rowKeywords = map[string]bool{
	"SELECT":  true,
	"PRAGMA":  true,
	"WITH":    true,
	"EXPLAIN": true,
	"VALUES":  true,
}

// returningKeywords lead statements that produce rows only with a
// RETURNING clause.
var returningKeywords = map[string]bool{
	"INSERT":  true,
	"REPLACE": true,
	"UPDATE":  true,
	"DELETE":  true,
}

// returnsRows reports whether sqlText produces rows: it starts with a
// row-producing keyword once leading comments are skipped, or it is a
// data change statement carrying a RETURNING clause.
func returnsRows(sqlText string) bool {
	s := skipLeadingNoise(sqlText)
	end := 0
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	keyword := strings.ToUpper(s[:end])

	if rowKeywords[keyword] {
		return true
	}
	return returningKeywords[keyword] && containsKeyword(s[end:], "RETURNING")
}

// skipLeadingNoise drops whitespace, opening parentheses and comments
// before the first keyword.
func skipLeadingNoise(s string) string {
	for {
		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return unicode.IsSpace(r) || r == '('
		})
		switch {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s[2:], "*/")
			if i < 0 {
				return ""
			}
			s = s[i+4:]
		default:
			return s
		}
	}
}

// containsKeyword reports whether keyword appears as a bare word in s,
// outside comments, string literals and quoted identifiers.
func containsKeyword(s, keyword string) bool {
	for len(s) > 0 {
		switch c := s[0]; {
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return false
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s[2:], "*/")
			if i < 0 {
				return false
			}
			s = s[i+4:]
		case c == '\'' || c == '"' || c == '`' || c == '[':
			closer := c
			if c == '[' {
				closer = ']'
			}
			i := strings.IndexByte(s[1:], closer)
			if i < 0 {
				return false
			}
			s = s[i+2:]
		case isWordByte(c):
			end := 1
			for end < len(s) && isWordByte(s[end]) {
				end++
			}
			if strings.EqualFold(s[:end], keyword) {
				return true
			}
			s = s[end:]
		default:
			s = s[1:]
		}
	}
	return false
}

// isWordByte reports whether c can be part of a keyword or identifier.
func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
