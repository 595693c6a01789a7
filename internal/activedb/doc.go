// Package activedb persists the active copy of every configuration object
// in SQLite and serves the queries the rest of the system reads from.
//
// The Store manages the database connection, schema initialization, and the
// name-keyed record operations: upsert, point lookup, delete, and literal
// prefix listing. One row per name; the payload column holds the encoded
// tree exactly as written. Reads of never-written names return no record
// rather than an error.
//
// The database is rebuildable from the signed file store, so schema changes
// bump the version in store.go and operators recreate the file instead of
// migrating in place.
package activedb
