// Package database provides SQLite connectivity for localstore.
//
// This package manages:
//   - Opening the device-local database file (creating its directory)
//   - WAL mode and busy timeout via the go-sqlite3 connection string
//   - A single-connection pool, mirroring one native plugin connection
//   - Health checks and lifecycle
//
// Security Considerations:
//   - Database file permissions are set to 0600 (owner read/write only)
//   - This package executes whatever SQL text it is given; callers that
//     build statements from untrusted input must sanitise it themselves
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path(),
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package database
