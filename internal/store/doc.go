// Package store persists streams, health samples, and segment metadata in
// SQLite and is the single mutation path for all of them.
//
// The Store manages the database connection, idempotent schema initialization,
// and the per-record atomic updates every other component relies on. A file
// lock on the data directory serializes racing CLI invocations; SQLite WAL
// mode plus a busy timeout covers contention inside a single process.
//
// Timestamps are stored as RFC3339Nano TEXT. Health samples and segments are
// append-only; nothing here updates or deletes them.
package store
