package itch

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// MessageType is the one-byte tag that starts every frame.
type MessageType byte

const (
	TypeAddOrder       MessageType = 'A'
	TypeAddOrderMPID   MessageType = 'F'
	TypeExecuted       MessageType = 'E'
	TypeCancel         MessageType = 'X'
	TypeDelete         MessageType = 'D'
	TypeStockDirectory MessageType = 'R'
	TypeSystemEvent    MessageType = 'S'
)

func (t MessageType) String() string {
	if t >= 0x21 && t <= 0x7e {
		return string(rune(t))
	}
	return fmt.Sprintf("0x%02x", byte(t))
}

// Name is a human label for known tags.
func (t MessageType) Name() string {
	switch t {
	case TypeAddOrder:
		return "add_order"
	case TypeAddOrderMPID:
		return "add_order_mpid"
	case TypeExecuted:
		return "executed"
	case TypeCancel:
		return "cancel"
	case TypeDelete:
		return "delete"
	case TypeStockDirectory:
		return "stock_directory"
	case TypeSystemEvent:
		return "system_event"
	default:
		return "unknown"
	}
}

// Side is the order side byte. Any byte value decodes; only 'B' and 'S' are
// meaningful.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
)

func (s Side) String() string {
	return string(rune(s))
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte{byte(s)}, nil
}

// SymbolLen is the fixed width of the stock field.
const SymbolLen = 8

// Symbol is the raw, right space-padded stock field.
type Symbol [SymbolLen]byte

// NewSymbol pads s with spaces to SymbolLen, truncating longer input.
func NewSymbol(s string) Symbol {
	var sym Symbol
	for i := range sym {
		sym[i] = ' '
	}
	copy(sym[:], s)
	return sym
}

// String returns all eight bytes verbatim, padding included.
func (s Symbol) String() string {
	return string(s[:])
}

// Trim returns the symbol without its right padding.
func (s Symbol) Trim() string {
	return string(bytes.TrimRight(s[:], " "))
}

func (s Symbol) MarshalText() ([]byte, error) {
	out := make([]byte, SymbolLen)
	copy(out, s[:])
	return out, nil
}

// PriceScale is the fixed-point divisor of Price.
const PriceScale = 10000

// Price is a fixed-point price with four implied decimal digits.
type Price uint32

func (p Price) Float64() float64 {
	return float64(p) / PriceScale
}

// Decimal returns the exact decimal value of p.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -4)
}

func (p Price) String() string {
	return p.Decimal().StringFixed(4)
}

// Message is a decoded frame. The set of implementations is closed:
// AddOrder, Executed, Cancel and Unparsed.
type Message interface {
	Type() MessageType
	isMessage()
}

// Header holds the fields every order event starts with.
type Header struct {
	StockLocator   uint16 `json:"stock_locator"`
	TrackingNumber uint16 `json:"tracking_number"`
	// Timestamp is nanoseconds since midnight.
	Timestamp      uint32 `json:"timestamp"`
	OrderReference uint64 `json:"order_reference"`
}

// AddOrder is an 'A' frame.
type AddOrder struct {
	Header
	Side   Side   `json:"side"`
	Shares uint32 `json:"shares"`
	Stock  Symbol `json:"stock"`
	Price  Price  `json:"price"`
}

func (AddOrder) Type() MessageType { return TypeAddOrder }
func (AddOrder) isMessage()        {}

// Executed is an 'E' frame.
type Executed struct {
	Header
	ExecutedShares uint32 `json:"executed_shares"`
	MatchNumber    uint64 `json:"match_number"`
}

func (Executed) Type() MessageType { return TypeExecuted }
func (Executed) isMessage()        {}

// Cancel is an 'X' frame.
type Cancel struct {
	Header
	CanceledShares uint32 `json:"canceled_shares"`
}

func (Cancel) Type() MessageType { return TypeCancel }
func (Cancel) isMessage()        {}

// Unparsed is a frame whose length is known but whose fields are not decoded.
// Raw is a private copy of the whole frame, tag included.
type Unparsed struct {
	Tag MessageType `json:"-"`
	Raw []byte      `json:"raw"`
}

func (u Unparsed) Type() MessageType { return u.Tag }
func (Unparsed) isMessage()          {}
