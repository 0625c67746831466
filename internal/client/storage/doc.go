// Package storage keeps the client's durable state in a local SQLite file.
//
// The schema is a single kv table created by embedded goose migrations (see
// Open). TokenStore uses exactly one row of it, under TokenKey, to persist the
// session credential across restarts. Nothing else about the session is
// written to disk.
package storage
