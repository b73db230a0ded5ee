package portfel

import (
	"iter"
	"maps"
	"slices"
)

// Lot is a surviving, possibly partially consumed, buy. It keeps its own
// entry price, currency and date for cost basis calculations.
type Lot struct {
	Ticker   string
	Quantity Quantity // remaining quantity, never negative
	Price    Money    // entry unit price, carries the entry currency
	Date     Date     // entry date
	Venue    string
}

// Cost returns the remaining cost of the lot (quantity * entry price), in the
// entry currency.
func (l Lot) Cost() Money { return l.Price.Mul(l.Quantity) }

// MatchedPair is one buy portion consumed by one sell. A sell spanning
// several lots emits one pair per lot consumed, each carrying the exact
// fractional quantity matched.
type MatchedPair struct {
	Ticker    string
	Quantity  Quantity
	BuyPrice  Money
	BuyDate   Date
	SellPrice Money
	SellDate  Date
	Venue     string // venue of the sell
}

// BuyCost returns the cost basis of the matched portion.
func (m MatchedPair) BuyCost() Money { return m.BuyPrice.Mul(m.Quantity) }

// SellProceeds returns the proceeds of the matched portion.
func (m MatchedPair) SellProceeds() Money { return m.SellPrice.Mul(m.Quantity) }

// RealizedGain returns proceeds minus cost basis, in the trade currency.
func (m MatchedPair) RealizedGain() Money { return m.SellProceeds().Sub(m.BuyCost()) }

// Oversell records the portion of a sell that exhausted the FIFO queue. The
// excess is never turned into a short position; it is reported here so the
// caller can decide policy instead of the data being silently dropped.
type Oversell struct {
	Ticker   string
	Date     Date
	Quantity Quantity // unmatched remainder, positive
}

// Book is the output of a FIFO pass: surviving open lots per ticker, the
// matched buy/sell pairs, and any oversells encountered.
type Book struct {
	open      map[string][]Lot
	Matches   []MatchedPair
	Oversells []Oversell
}

// OpenLots returns the surviving lots of a ticker, oldest first.
func (b *Book) OpenLots(ticker string) []Lot { return b.open[ticker] }

// AllOpenLots returns every surviving lot across all tickers, grouped by
// ticker in lexical order.
func (b *Book) AllOpenLots() []Lot {
	var all []Lot
	for ticker := range b.Tickers() {
		all = append(all, b.open[ticker]...)
	}
	return all
}

// Tickers iterates over tickers holding at least one open lot, in lexical
// order.
func (b *Book) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, ticker := range slices.Sorted(maps.Keys(b.open)) {
			if !yield(ticker) {
				return
			}
		}
	}
}

// Position returns the total open quantity for a ticker.
func (b *Book) Position(ticker string) Quantity {
	var total Quantity
	for _, lot := range b.open[ticker] {
		total = total.Add(lot.Quantity)
	}
	return total
}

// EarliestEntry returns the entry date of the oldest open lot for a ticker.
func (b *Book) EarliestEntry(ticker string) (Date, bool) {
	lots := b.open[ticker]
	if len(lots) == 0 {
		return Date{}, false
	}
	return lots[0].Date, true
}

// Ingest runs a FIFO pass over a transaction log and returns the resulting
// Book. Transactions are validated first (a malformed record aborts the whole
// ingestion), then stably sorted by trade date so same-date trades keep their
// original order.
//
// A buy appends a new lot to its ticker's queue. A sell consumes quantity
// from the front of the queue, splitting a lot when only partially consumed,
// and emits one matched pair per lot touched. A sell exceeding all remaining
// lots leaves an Oversell record in the Book.
func Ingest(txs []Transaction) (*Book, error) {
	if err := ValidateAll(txs); err != nil {
		return nil, err
	}

	book := &Book{open: make(map[string][]Lot)}
	// FIFO queues are kept as a slice plus a head index per ticker; lots are
	// replaced, never mutated in place.
	queues := make(map[string][]Lot)
	heads := make(map[string]int)

	for _, tx := range SortTransactions(txs) {
		if tx.IsBuy() {
			queues[tx.Ticker] = append(queues[tx.Ticker], Lot{
				Ticker:   tx.Ticker,
				Quantity: tx.Quantity,
				Price:    tx.Price,
				Date:     tx.Date,
				Venue:    tx.Venue,
			})
			continue
		}

		toSell := tx.Quantity.Neg()
		queue, head := queues[tx.Ticker], heads[tx.Ticker]
		for toSell.IsPositive() && head < len(queue) {
			lot := queue[head]
			matched := lot.Quantity.Min(toSell)
			book.Matches = append(book.Matches, MatchedPair{
				Ticker:    tx.Ticker,
				Quantity:  matched,
				BuyPrice:  lot.Price,
				BuyDate:   lot.Date,
				SellPrice: tx.Price,
				SellDate:  tx.Date,
				Venue:     tx.Venue,
			})
			remaining := lot.Quantity.Sub(matched)
			if remaining.IsPositive() {
				// Partial consumption: replace the head with a shrunk copy.
				lot.Quantity = remaining
				queue[head] = lot
			} else {
				head++
			}
			toSell = toSell.Sub(matched)
		}
		if toSell.IsPositive() {
			book.Oversells = append(book.Oversells, Oversell{
				Ticker:   tx.Ticker,
				Date:     tx.Date,
				Quantity: toSell,
			})
		}
		queues[tx.Ticker], heads[tx.Ticker] = queue, head
	}

	for ticker, queue := range queues {
		if head := heads[ticker]; head < len(queue) {
			book.open[ticker] = slices.Clone(queue[head:])
		}
	}
	return book, nil
}
