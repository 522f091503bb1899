package itch

import (
	"fmt"
	"slices"

	"github.com/danmuck/tempo/internal/itch/wire"
)

// AppendAddOrder appends the 'A' frame for m to dst.
func AppendAddOrder(dst []byte, m AddOrder) []byte {
	dst, b := extend(dst, AddOrderLen)
	putHeader(b, TypeAddOrder, m.Header)
	b[offAddSide] = byte(m.Side)
	wire.Put32(b, offAddShares, m.Shares)
	copy(b[offAddStock:offAddStock+SymbolLen], m.Stock[:])
	wire.Put32(b, offAddPrice, uint32(m.Price))
	return dst
}

// AppendExecuted appends the 'E' frame for m to dst.
func AppendExecuted(dst []byte, m Executed) []byte {
	dst, b := extend(dst, ExecutedLen)
	putHeader(b, TypeExecuted, m.Header)
	wire.Put32(b, offExecShares, m.ExecutedShares)
	wire.Put64(b, offExecMatch, m.MatchNumber)
	return dst
}

// AppendCancel appends the 'X' frame for m to dst.
func AppendCancel(dst []byte, m Cancel) []byte {
	dst, b := extend(dst, CancelLen)
	putHeader(b, TypeCancel, m.Header)
	wire.Put32(b, offCancelShares, m.CanceledShares)
	return dst
}

// Append appends the frame for any Message to dst. An Unparsed frame must
// carry its own tag and exactly its table length.
func Append(dst []byte, m Message) ([]byte, error) {
	switch v := m.(type) {
	case AddOrder:
		return AppendAddOrder(dst, v), nil
	case Executed:
		return AppendExecuted(dst, v), nil
	case Cancel:
		return AppendCancel(dst, v), nil
	case Unparsed:
		n, err := FrameLength(v.Tag)
		if err != nil {
			return dst, err
		}
		if len(v.Raw) != n {
			return dst, fmt.Errorf("itch: %s frame is %d bytes, want %d", v.Tag, len(v.Raw), n)
		}
		if got := MessageType(v.Raw[offTag]); got != v.Tag {
			return dst, &TagMismatchError{Want: v.Tag, Got: got}
		}
		return append(dst, v.Raw...), nil
	default:
		return dst, fmt.Errorf("itch: cannot encode %T", m)
	}
}

// extend grows dst by n zeroed bytes and returns the new slice plus the
// appended window.
func extend(dst []byte, n int) ([]byte, []byte) {
	start := len(dst)
	dst = slices.Grow(dst, n)[:start+n]
	b := dst[start:]
	clear(b)
	return dst, b
}

func putHeader(b []byte, t MessageType, h Header) {
	b[offTag] = byte(t)
	wire.Put16(b, offLocator, h.StockLocator)
	wire.Put16(b, offTracking, h.TrackingNumber)
	wire.Put32(b, offTimestamp, h.Timestamp)
	wire.Put64(b, offOrderRef, h.OrderReference)
}
