// Package stream walks a contiguous feed of itch frames.
//
// Ownership boundary:
// - stream cursor and end-of-stream accounting
// - in-memory scanning (Scanner, Parse) and io.Reader framing (Reader)
// - callback dispatch to a Handler
//
// Framing always reads the tag, looks up the frame length, and only then
// touches the rest of the frame. The first error stops the walk; nothing is
// skipped or resynchronised.
package stream
