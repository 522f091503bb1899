package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestUint16BigEndian(t *testing.T) {
	b := []byte{0xff, 0x12, 0x34}
	if got := Uint16(b, 1); got != 0x1234 {
		t.Fatalf("unexpected uint16: %#x", got)
	}
}

func TestUint32BigEndian(t *testing.T) {
	b := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	if got := Uint32(b, 1); got != 0xdeadbeef {
		t.Fatalf("unexpected uint32: %#x", got)
	}
}

func TestUint48BigEndian(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	if got := Uint48(b, 0); got != 0x010203040506 {
		t.Fatalf("unexpected uint48: %#x", got)
	}
}

func TestUint64MatchesStdlib(t *testing.T) {
	values := []uint64{0, 1, 0xffffffff, 0x100000000, 0x0102030405060708, math.MaxUint64}
	for _, v := range values {
		buf := make([]byte, 3+Width64)
		binary.BigEndian.PutUint64(buf[3:], v)
		if got := Uint64(buf, 3); got != v {
			t.Fatalf("uint64 mismatch: got=%#x want=%#x", got, v)
		}
	}
}

func TestPutInverse(t *testing.T) {
	buf := make([]byte, 20)
	Put16(buf, 0, 0xbeef)
	Put32(buf, 2, 0xcafef00d)
	Put48(buf, 6, 0xffff_ffff_ffff)
	Put64(buf, 12, math.MaxUint64-1)

	if got := Uint16(buf, 0); got != 0xbeef {
		t.Fatalf("put16 round-trip: %#x", got)
	}
	if got := Uint32(buf, 2); got != 0xcafef00d {
		t.Fatalf("put32 round-trip: %#x", got)
	}
	if got := Uint48(buf, 6); got != 0xffff_ffff_ffff {
		t.Fatalf("put48 round-trip: %#x", got)
	}
	if got := Uint64(buf, 12); got != math.MaxUint64-1 {
		t.Fatalf("put64 round-trip: %#x", got)
	}
}

func TestPut48DropsHighBits(t *testing.T) {
	buf := make([]byte, Width48)
	Put48(buf, 0, 0xabcd_0000_0000_0001)
	want := []byte{0, 0, 0, 0, 0, 1}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected bytes: %v", buf)
	}
}

func TestPutWritesNetworkOrder(t *testing.T) {
	buf := make([]byte, Width32)
	Put32(buf, 0, 1500000)
	want := []byte{0x00, 0x16, 0xe3, 0x60}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected bytes: % x", buf)
	}
}
