// Package wire reads and writes big-endian integers at fixed offsets of a frame.
//
// Callers own bounds: every offset passed here must leave room for the full
// width inside b.
package wire

import "encoding/binary"

// Widths in bytes of the integer encodings used on the feed.
const (
	Width16 = 2
	Width32 = 4
	Width48 = 6
	Width64 = 8
)

// Uint16 returns the big-endian uint16 at b[off:off+2].
func Uint16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+Width16])
}

// Uint32 returns the big-endian uint32 at b[off:off+4].
func Uint32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+Width32])
}

// Uint48 returns the big-endian 48-bit value at b[off:off+6] in the low bits
// of a uint64. Full ITCH 5.0 frames carry their nanosecond timestamps this way;
// the compact frames decoded here use 32-bit timestamps.
func Uint48(b []byte, off int) uint64 {
	hi := uint64(binary.BigEndian.Uint16(b[off : off+2]))
	lo := uint64(binary.BigEndian.Uint32(b[off+2 : off+Width48]))
	return hi<<32 | lo
}

// Uint64 returns the big-endian uint64 at b[off:off+8], built from its two
// 32-bit halves.
func Uint64(b []byte, off int) uint64 {
	hi := uint64(binary.BigEndian.Uint32(b[off : off+4]))
	lo := uint64(binary.BigEndian.Uint32(b[off+4 : off+Width64]))
	return hi<<32 | lo
}

// Put16 writes v big-endian at b[off:off+2].
func Put16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+Width16], v)
}

// Put32 writes v big-endian at b[off:off+4].
func Put32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+Width32], v)
}

// Put48 writes the low 48 bits of v big-endian at b[off:off+6]. Higher bits
// are dropped.
func Put48(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint16(b[off:off+2], uint16(v>>32))
	binary.BigEndian.PutUint32(b[off+2:off+Width48], uint32(v))
}

// Put64 writes v big-endian at b[off:off+8] as two 32-bit halves.
func Put64(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint32(b[off:off+4], uint32(v>>32))
	binary.BigEndian.PutUint32(b[off+4:off+Width64], uint32(v))
}
