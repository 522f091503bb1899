// Package render prints decoded feed records as text or JSON lines.
package render

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/danmuck/tempo/internal/itch"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Printer writes one line per frame. It implements stream.Handler. Write
// errors are sticky and reported by Flush.
type Printer struct {
	out     *bufio.Writer
	format  Format
	limit   int
	summary Summary
	err     error
}

// NewPrinter returns a Printer that stops writing after limit records; a
// limit of 0 writes every record. Every frame is counted either way.
func NewPrinter(w io.Writer, format Format, limit int) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
	return &Printer{
		out:     bufio.NewWriter(w),
		format:  format,
		limit:   limit,
		summary: Summary{Counts: make(map[itch.MessageType]int)},
	}, nil
}

type addOrderLine struct {
	Type string `json:"type"`
	itch.AddOrder
	PriceDecimal string `json:"price_decimal"`
}

type executedLine struct {
	Type string `json:"type"`
	itch.Executed
}

type cancelLine struct {
	Type string `json:"type"`
	itch.Cancel
}

type otherLine struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

func (p *Printer) OnAddOrder(m itch.AddOrder) {
	if !p.admit(m.Type()) {
		return
	}
	if p.format == FormatJSON {
		p.writeJSON(addOrderLine{Type: m.Type().String(), AddOrder: m, PriceDecimal: m.Price.String()})
		return
	}
	p.printf("A: %d shares ref=%d\n", m.Shares, m.OrderReference)
}

func (p *Printer) OnExecuted(m itch.Executed) {
	if !p.admit(m.Type()) {
		return
	}
	if p.format == FormatJSON {
		p.writeJSON(executedLine{Type: m.Type().String(), Executed: m})
		return
	}
	p.printf("E: exec %d on ref=%d\n", m.ExecutedShares, m.OrderReference)
}

func (p *Printer) OnCancel(m itch.Cancel) {
	if !p.admit(m.Type()) {
		return
	}
	if p.format == FormatJSON {
		p.writeJSON(cancelLine{Type: m.Type().String(), Cancel: m})
		return
	}
	p.printf("X: cancel %d ref=%d\n", m.CanceledShares, m.OrderReference)
}

func (p *Printer) OnOther(tag itch.MessageType, frame []byte) {
	if !p.admit(tag) {
		return
	}
	if p.format == FormatJSON {
		p.writeJSON(otherLine{Type: tag.String(), Name: tag.Name(), Length: len(frame)})
		return
	}
	p.printf("%s: %d bytes\n", tag, len(frame))
}

// admit counts the frame and reports whether it should be written.
func (p *Printer) admit(tag itch.MessageType) bool {
	p.summary.Counts[tag]++
	p.summary.Total++
	if p.err != nil || (p.limit > 0 && p.summary.Printed >= p.limit) {
		return false
	}
	p.summary.Printed++
	return true
}

func (p *Printer) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		p.err = fmt.Errorf("render: write: %w", err)
	}
}

func (p *Printer) writeJSON(v any) {
	line, err := json.Marshal(v)
	if err != nil {
		p.err = fmt.Errorf("render: marshal: %w", err)
		return
	}
	line = append(line, '\n')
	if _, err := p.out.Write(line); err != nil {
		p.err = fmt.Errorf("render: write: %w", err)
	}
}

// Flush writes buffered output and returns the first error seen.
func (p *Printer) Flush() error {
	if err := p.out.Flush(); err != nil && p.err == nil {
		p.err = fmt.Errorf("render: write: %w", err)
	}
	return p.err
}

func (p *Printer) Summary() Summary {
	return p.summary
}

// Summary counts frames seen by a Printer.
type Summary struct {
	Counts  map[itch.MessageType]int
	Total   int
	Printed int
}

// WriteTo writes one "<tag> <name> <count>" line per tag seen, in tag order,
// followed by the total.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	tags := make([]itch.MessageType, 0, len(s.Counts))
	for tag := range s.Counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var written int64
	for _, tag := range tags {
		n, err := fmt.Fprintf(w, "%s %-16s %d\n", tag, tag.Name(), s.Counts[tag])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	n, err := fmt.Fprintf(w, "total %d\n", s.Total)
	written += int64(n)
	return written, err
}
