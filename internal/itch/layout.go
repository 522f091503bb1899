package itch

// Frame lengths, tag byte included.
const (
	AddOrderLen       = 35
	AddOrderMPIDLen   = 35
	ExecutedLen       = 31
	CancelLen         = 23
	DeleteLen         = 19
	StockDirectoryLen = 37
	SystemEventLen    = 12

	// MaxFrameLen is the longest frame in the length table.
	MaxFrameLen = StockDirectoryLen
)

// Field offsets shared by the order events.
const (
	offTag       = 0
	offLocator   = 1
	offTracking  = 3
	offTimestamp = 5
	offOrderRef  = 9
)

// 'A' body. Byte 34 is reserved.
const (
	offAddSide   = 17
	offAddShares = 18
	offAddStock  = 22
	offAddPrice  = 30
)

// 'E' body. Bytes 29-30 are reserved.
const (
	offExecShares = 17
	offExecMatch  = 21
)

// 'X' body. Bytes 21-22 are reserved.
const offCancelShares = 17

// FrameLength returns the total wire length of a frame tagged t. Unknown tags
// are an error; there is no default length.
func FrameLength(t MessageType) (int, error) {
	switch t {
	case TypeAddOrder:
		return AddOrderLen, nil
	case TypeAddOrderMPID:
		return AddOrderMPIDLen, nil
	case TypeExecuted:
		return ExecutedLen, nil
	case TypeCancel:
		return CancelLen, nil
	case TypeDelete:
		return DeleteLen, nil
	case TypeStockDirectory:
		return StockDirectoryLen, nil
	case TypeSystemEvent:
		return SystemEventLen, nil
	default:
		return 0, &UnknownTypeError{Tag: t}
	}
}

// Decodable reports whether Decode produces a typed record for t rather than
// Unparsed.
func Decodable(t MessageType) bool {
	switch t {
	case TypeAddOrder, TypeExecuted, TypeCancel:
		return true
	default:
		return false
	}
}
