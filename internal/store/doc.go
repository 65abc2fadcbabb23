// Package store provides the data access service for the local database.
//
// A Service wraps one shared bridge.Handle and exposes CRUD operations
// that build SQL text from table names, conditions and Records. Every
// operation returns a bridge.Promise at once; the statement itself runs
// only after the readiness gate has fired.
//
// Get and GetWhere settle with a Selection whose shape depends on the
// number of matching rows: false, a single row, or a list of rows.
//
// Statements are built by string concatenation. Values are single-quoted
// but never escaped, so conditions and values must come from trusted code.
//
// Usage:
//
//	gate := readiness.NewGate()
//	svc, err := store.New(store.Options{
//	    Name:     "ecc.db",
//	    Gate:     gate,
//	    Opener:   sqlite,
//	    Executor: sqlite,
//	    Logger:   log,
//	})
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//
//	gate.Open()
//
//	id, err := svc.Insert("notes", store.NewRecord(
//	    store.F("title", "hello"),
//	)).Await(ctx)
package store
