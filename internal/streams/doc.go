// Package streams defines the domain model shared across streamhub: the
// Stream record and its lifecycle status, health samples, segment metadata,
// and the error taxonomy surfaced to CLI callers.
//
// Status and Protocol are closed string enums; unknown values are rejected at
// parse time rather than at use time. Treat this package as the single source
// of truth for stream semantics; when you add new statuses or protocols,
// update the parse tables here and the store schema together.
package streams
