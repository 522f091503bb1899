package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/danmuck/tempo/internal/itch"
)

func sampleStream() []byte {
	buf := itch.AppendAddOrder(nil, itch.AddOrder{
		Header: itch.Header{StockLocator: 1, TrackingNumber: 1, Timestamp: 100, OrderReference: 1},
		Side:   itch.SideBuy,
		Shares: 500,
		Stock:  itch.NewSymbol("AAPL"),
		Price:  1500000,
	})
	buf = itch.AppendExecuted(buf, itch.Executed{
		Header:         itch.Header{StockLocator: 1, TrackingNumber: 2, Timestamp: 150, OrderReference: 1},
		ExecutedShares: 200,
		MatchNumber:    99,
	})
	buf = itch.AppendCancel(buf, itch.Cancel{
		Header:         itch.Header{StockLocator: 1, TrackingNumber: 3, Timestamp: 200, OrderReference: 1},
		CanceledShares: 300,
	})
	return buf
}

func systemEvent() []byte {
	frame := make([]byte, itch.SystemEventLen)
	frame[0] = byte(itch.TypeSystemEvent)
	return frame
}

func TestScannerAddExecuteCancel(t *testing.T) {
	data := sampleStream()
	s := NewScanner(data)

	var got []itch.Message
	for s.Next() {
		got = append(got, s.Message())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if s.Offset() != len(data) {
		t.Fatalf("cursor not at end: %d of %d", s.Offset(), len(data))
	}

	add, ok := got[0].(itch.AddOrder)
	if !ok || add.OrderReference != 1 || add.Shares != 500 {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	exec, ok := got[1].(itch.Executed)
	if !ok || exec.OrderReference != 1 || exec.ExecutedShares != 200 {
		t.Fatalf("unexpected second record: %+v", got[1])
	}
	cancel, ok := got[2].(itch.Cancel)
	if !ok || cancel.OrderReference != 1 || cancel.CanceledShares != 300 {
		t.Fatalf("unexpected third record: %+v", got[2])
	}
}

func TestScannerFramesUndecodedTypes(t *testing.T) {
	data := append(systemEvent(), sampleStream()...)
	s := NewScanner(data)
	count := 0
	for s.Next() {
		if count == 0 {
			if s.Message().Type() != itch.TypeSystemEvent || len(s.Frame()) != itch.SystemEventLen {
				t.Fatalf("unexpected first frame: %+v", s.Message())
			}
		}
		count++
	}
	if s.Err() != nil || count != 4 || s.Offset() != len(data) {
		t.Fatalf("unexpected scan result: count=%d off=%d err=%v", count, s.Offset(), s.Err())
	}
}

func TestScannerStopsAtUnknownTag(t *testing.T) {
	good := sampleStream()
	data := append(append([]byte{}, good...), 'Z', 0, 0, 0)
	data = append(data, sampleStream()...)

	s := NewScanner(data)
	count := 0
	for s.Next() {
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 records before unknown tag, got %d", count)
	}
	err := s.Err()
	if !errors.Is(err, itch.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Offset != int64(len(good)) {
		t.Fatalf("unexpected frame error: %v", err)
	}
	if s.Offset() != len(good) {
		t.Fatalf("cursor moved past unknown tag: %d", s.Offset())
	}
	if s.Next() {
		t.Fatalf("scanner resumed after error")
	}
}

func TestScannerTruncatedTail(t *testing.T) {
	data := sampleStream()
	data = data[:len(data)-5]
	s := NewScanner(data)
	count := 0
	for s.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 complete records, got %d", count)
	}
	if !errors.Is(s.Err(), itch.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", s.Err())
	}
	if s.Message() != nil {
		t.Fatalf("partial record exposed: %+v", s.Message())
	}
}

func TestScannerEmpty(t *testing.T) {
	s := NewScanner(nil)
	if s.Next() || s.Err() != nil || s.Offset() != 0 {
		t.Fatalf("unexpected empty scan state")
	}
}

func TestParseDispatchesInOrder(t *testing.T) {
	data := append(sampleStream(), systemEvent()...)
	var order []string
	h := HandlerFuncs{
		AddOrder: func(m itch.AddOrder) { order = append(order, "A") },
		Executed: func(m itch.Executed) { order = append(order, "E") },
		Cancel:   func(m itch.Cancel) { order = append(order, "X") },
		Other:    func(tag itch.MessageType, frame []byte) { order = append(order, tag.String()) },
	}
	n, err := Parse(data, h)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n != len(data) {
		t.Fatalf("consumed %d of %d", n, len(data))
	}
	if got := strings.Join(order, ""); got != "AEXS" {
		t.Fatalf("unexpected dispatch order: %s", got)
	}
}

func TestParseNilCallbacksAndError(t *testing.T) {
	data := append(sampleStream(), 0x00)
	n, err := Parse(data, HandlerFuncs{})
	if !errors.Is(err, itch.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if n != len(data)-1 {
		t.Fatalf("unexpected consumed count: %d", n)
	}
}

func TestReaderFragmentedInput(t *testing.T) {
	data := sampleStream()
	r := NewReader(iotest.OneByteReader(bytes.NewReader(data)))

	var types []itch.MessageType
	for {
		msg, err := r.ReadMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		types = append(types, msg.Type())
	}
	if len(types) != 3 || types[0] != itch.TypeAddOrder || types[1] != itch.TypeExecuted || types[2] != itch.TypeCancel {
		t.Fatalf("unexpected types: %v", types)
	}
	if r.Offset() != int64(len(data)) {
		t.Fatalf("offset %d, want %d", r.Offset(), len(data))
	}
}

func TestReaderTruncatedFrame(t *testing.T) {
	data := sampleStream()
	r := NewReader(bytes.NewReader(data[:len(data)-1]))
	count := 0
	var err error
	for {
		if _, err = r.ReadMessage(); err != nil {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 records, got %d", count)
	}
	if !errors.Is(err, itch.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	var trunc *itch.TruncatedError
	if !errors.As(err, &trunc) || trunc.Have != itch.CancelLen-1 {
		t.Fatalf("unexpected truncation detail: %v", err)
	}
	if _, again := r.ReadMessage(); again != err {
		t.Fatalf("expected sticky error, got %v", again)
	}
}

func TestReaderUnknownTagIsSticky(t *testing.T) {
	r := NewReader(bytes.NewReader(append([]byte{'?'}, sampleStream()...)))
	_, err := r.ReadFrame()
	if !errors.Is(err, itch.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, err := r.ReadFrame(); !errors.Is(err, itch.ErrUnknownType) {
		t.Fatalf("expected sticky ErrUnknownType, got %v", err)
	}
}

func TestReaderDrain(t *testing.T) {
	data := append(systemEvent(), sampleStream()...)
	var adds, execs, cancels, others int
	h := HandlerFuncs{
		AddOrder: func(itch.AddOrder) { adds++ },
		Executed: func(itch.Executed) { execs++ },
		Cancel:   func(itch.Cancel) { cancels++ },
		Other:    func(itch.MessageType, []byte) { others++ },
	}
	r := NewReader(bytes.NewReader(data))
	if err := r.Drain(h); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if adds != 1 || execs != 1 || cancels != 1 || others != 1 {
		t.Fatalf("unexpected counts: %d %d %d %d", adds, execs, cancels, others)
	}
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	if _, err := r.ReadMessage(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func BenchmarkParse(b *testing.B) {
	frame := sampleStream()
	data := make([]byte, 0, len(frame)*1000)
	for i := 0; i < 1000; i++ {
		data = append(data, frame...)
	}
	h := HandlerFuncs{}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data, h); err != nil {
			b.Fatal(err)
		}
	}
}
