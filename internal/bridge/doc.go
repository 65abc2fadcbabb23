// Package bridge is the SQL execution bridge between localstore and the
// SQLite engine.
//
// It offers a single capability: run one statement of SQL text against an
// open Handle and settle a Promise with the ResultSet or the error. The
// bridge does not parse, validate or parameterise the text; it only looks
// at the leading keyword to decide whether the statement produces rows.
//
// Statements that produce rows (SELECT, PRAGMA, WITH, EXPLAIN, VALUES)
// return Columns and Rows. Everything else returns InsertID and
// RowsAffected.
//
// Usage:
//
//	b := bridge.NewSQLite(bridge.Options{Dir: "./data", WALMode: true, BusyTimeout: 5})
//	h, err := b.Open(ctx, "ecc.db")
//	if err != nil {
//	    return err
//	}
//	rs, err := b.Execute(ctx, h, "SELECT * FROM notes;").Await(ctx)
package bridge
