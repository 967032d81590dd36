// Package store persists the console's audit journal in SQLite.
//
// The journal records every successful write an operator issues through the
// web console: which browser session did it, what action, and against which
// customer, account or movement. Business data itself lives in the banking
// API and is never stored here.
//
// The database runs in WAL mode:
//
//	PRAGMA journal_mode=WAL;
//
// Use NewSQLiteStore(path) with a file under t.TempDir() in tests.
package store
