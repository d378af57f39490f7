// Package jsonl implements the vector index as a newline-delimited JSON
// flat file. The whole index is loaded into an immutable RAM snapshot;
// searches run against the snapshot and reloads swap it atomically.
package jsonl
