// Package synth writes deterministic synthetic feeds: a block of AddOrders
// followed by Execute and Cancel events that never take an order below zero
// remaining shares.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/danmuck/tempo/internal/itch"
)

const (
	minShares = 100
	maxShares = 10000
	minPrice  = 1000
	maxPrice  = 200000

	addTick   = 100
	eventTick = 50
	maxEvents = 3
)

type Config struct {
	Adds         int
	Seed         uint64
	StockLocator uint16
	Symbol       string
}

func DefaultConfig() Config {
	return Config{
		Adds:         1000,
		Seed:         123456,
		StockLocator: 1,
		Symbol:       "AAPL",
	}
}

// Stats counts what Generate wrote.
type Stats struct {
	Adds     int
	Executes int
	Cancels  int
	Bytes    int64
}

func (s Stats) Messages() int {
	return s.Adds + s.Executes + s.Cancels
}

type order struct {
	ref       uint64
	remaining uint32
}

// Generate writes the feed described by cfg to w. The same cfg always
// produces the same bytes.
func Generate(w io.Writer, cfg Config) (Stats, error) {
	if cfg.Adds < 0 {
		return Stats{}, fmt.Errorf("synth: negative add count %d", cfg.Adds)
	}
	if len(cfg.Symbol) > itch.SymbolLen {
		return Stats{}, fmt.Errorf("synth: symbol %q longer than %d bytes", cfg.Symbol, itch.SymbolLen)
	}

	g := &generator{
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		out:     bufio.NewWriter(w),
		locator: cfg.StockLocator,
		symbol:  itch.NewSymbol(cfg.Symbol),
		buf:     make([]byte, 0, itch.MaxFrameLen),
	}

	orders := make([]order, 0, cfg.Adds)
	for i := 0; i < cfg.Adds; i++ {
		o, err := g.add()
		if err != nil {
			return g.stats, err
		}
		orders = append(orders, o)
	}
	for i := range orders {
		if err := g.events(&orders[i]); err != nil {
			return g.stats, err
		}
	}
	if err := g.out.Flush(); err != nil {
		return g.stats, fmt.Errorf("synth: flush: %w", err)
	}
	return g.stats, nil
}

type generator struct {
	rng      *rand.Rand
	out      *bufio.Writer
	locator  uint16
	symbol   itch.Symbol
	buf      []byte
	tracking uint16
	ts       uint32
	nextRef  uint64
	stats    Stats
}

func (g *generator) header(tick uint32, ref uint64) itch.Header {
	g.tracking++
	g.ts += tick
	return itch.Header{
		StockLocator:   g.locator,
		TrackingNumber: g.tracking,
		Timestamp:      g.ts,
		OrderReference: ref,
	}
}

func (g *generator) add() (order, error) {
	g.nextRef++
	side := itch.SideSell
	if g.rng.IntN(2) == 1 {
		side = itch.SideBuy
	}
	m := itch.AddOrder{
		Header: g.header(addTick, g.nextRef),
		Side:   side,
		Shares: between(g.rng, minShares, maxShares),
		Stock:  g.symbol,
		Price:  itch.Price(between(g.rng, minPrice, maxPrice)),
	}
	if err := g.write(itch.AppendAddOrder(g.buf[:0], m)); err != nil {
		return order{}, err
	}
	g.stats.Adds++
	return order{ref: m.OrderReference, remaining: m.Shares}, nil
}

func (g *generator) events(o *order) error {
	n := 1 + g.rng.IntN(maxEvents)
	for e := 0; e < n && o.remaining > 0; e++ {
		execute := g.rng.IntN(2) == 0
		qty := uint32(float64(o.remaining) * g.rng.Float64())
		if qty == 0 {
			qty = 1
		}
		if qty > o.remaining {
			qty = o.remaining
		}

		var frame []byte
		if execute {
			frame = itch.AppendExecuted(g.buf[:0], itch.Executed{
				Header:         g.header(eventTick, o.ref),
				ExecutedShares: qty,
				MatchNumber:    g.rng.Uint64(),
			})
		} else {
			frame = itch.AppendCancel(g.buf[:0], itch.Cancel{
				Header:         g.header(eventTick, o.ref),
				CanceledShares: qty,
			})
		}
		if err := g.write(frame); err != nil {
			return err
		}
		if execute {
			g.stats.Executes++
		} else {
			g.stats.Cancels++
		}
		o.remaining -= qty
	}
	return nil
}

func (g *generator) write(frame []byte) error {
	n, err := g.out.Write(frame)
	g.stats.Bytes += int64(n)
	if err != nil {
		return fmt.Errorf("synth: write: %w", err)
	}
	return nil
}

// between returns a uniform value in [lo, hi].
func between(rng *rand.Rand, lo, hi uint32) uint32 {
	return lo + rng.Uint32N(hi-lo+1)
}
