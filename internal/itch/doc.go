// Package itch owns the feed's message contract: record types, the tag to
// frame-length table, and the decoders and encoders for each frame layout.
//
// Ownership boundary:
// - record shapes and wire offsets
// - frame length lookup (the only source of framing truth)
// - typed decode errors
//
// Stream cursors, file access and output formatting live outside this package
// (see itch/stream, feedfile, render). Nothing here allocates beyond the
// returned record, performs I/O, or logs.
package itch
