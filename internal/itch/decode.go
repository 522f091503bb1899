package itch

import "github.com/danmuck/tempo/internal/itch/wire"

// Decode decodes the frame tagged t at the start of b. Only the first
// FrameLength(t) bytes are read; anything after them is ignored. The returned
// record never aliases b.
func Decode(t MessageType, b []byte) (Message, error) {
	n, err := FrameLength(t)
	if err != nil {
		return nil, err
	}
	frame := b
	if len(frame) > n {
		frame = frame[:n]
	}
	if err := checkFrame(t, n, frame); err != nil {
		return nil, err
	}

	switch t {
	case TypeAddOrder:
		return decodeAddOrder(frame), nil
	case TypeExecuted:
		return decodeExecuted(frame), nil
	case TypeCancel:
		return decodeCancel(frame), nil
	default:
		raw := make([]byte, n)
		copy(raw, frame)
		return Unparsed{Tag: t, Raw: raw}, nil
	}
}

// DecodeAddOrder decodes an 'A' frame.
func DecodeAddOrder(b []byte) (AddOrder, error) {
	if err := checkFrame(TypeAddOrder, AddOrderLen, b); err != nil {
		return AddOrder{}, err
	}
	return decodeAddOrder(b), nil
}

// DecodeExecuted decodes an 'E' frame.
func DecodeExecuted(b []byte) (Executed, error) {
	if err := checkFrame(TypeExecuted, ExecutedLen, b); err != nil {
		return Executed{}, err
	}
	return decodeExecuted(b), nil
}

// DecodeCancel decodes an 'X' frame.
func DecodeCancel(b []byte) (Cancel, error) {
	if err := checkFrame(TypeCancel, CancelLen, b); err != nil {
		return Cancel{}, err
	}
	return decodeCancel(b), nil
}

func checkFrame(t MessageType, n int, b []byte) error {
	if len(b) < n {
		return &TruncatedError{Tag: t, Want: n, Have: len(b)}
	}
	if got := MessageType(b[offTag]); got != t {
		return &TagMismatchError{Want: t, Got: got}
	}
	return nil
}

func decodeHeader(b []byte) Header {
	return Header{
		StockLocator:   wire.Uint16(b, offLocator),
		TrackingNumber: wire.Uint16(b, offTracking),
		Timestamp:      wire.Uint32(b, offTimestamp),
		OrderReference: wire.Uint64(b, offOrderRef),
	}
}

func decodeAddOrder(b []byte) AddOrder {
	m := AddOrder{
		Header: decodeHeader(b),
		Side:   Side(b[offAddSide]),
		Shares: wire.Uint32(b, offAddShares),
		Price:  Price(wire.Uint32(b, offAddPrice)),
	}
	copy(m.Stock[:], b[offAddStock:offAddStock+SymbolLen])
	return m
}

func decodeExecuted(b []byte) Executed {
	return Executed{
		Header:         decodeHeader(b),
		ExecutedShares: wire.Uint32(b, offExecShares),
		MatchNumber:    wire.Uint64(b, offExecMatch),
	}
}

func decodeCancel(b []byte) Cancel {
	return Cancel{
		Header:         decodeHeader(b),
		CanceledShares: wire.Uint32(b, offCancelShares),
	}
}
