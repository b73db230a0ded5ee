package portfel

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Instrument holds the static metadata of a traded security: the category it
// is reported under and the currency it is quoted in. It is set once when the
// ticker is first traded and read-only afterwards.
type Instrument struct {
	ticker   string
	category string
	currency string
}

func NewInstrument(ticker, category, currency string) Instrument {
	return Instrument{ticker: ticker, category: category, currency: currency}
}

// Ticker returns the human-friendly ticker symbol of the instrument.
func (s Instrument) Ticker() string { return s.ticker }

// Category returns the reporting category (e.g. "stocks", "bonds").
func (s Instrument) Category() string { return s.category }

// Currency returns the currency the instrument is quoted in.
func (s Instrument) Currency() string { return s.currency }

// Instruments indexes instrument references by ticker.
type Instruments struct {
	index map[string]Instrument
}

func NewInstruments(refs ...Instrument) *Instruments {
	set := &Instruments{index: make(map[string]Instrument)}
	for _, ref := range refs {
		set.index[ref.ticker] = ref
	}
	return set
}

// Add declares an instrument. Redeclaring an existing ticker with different
// metadata is an error: the reference is set once when first traded.
func (s *Instruments) Add(ref Instrument) error {
	if existing, ok := s.index[ref.ticker]; ok && existing != ref {
		return fmt.Errorf("instrument %q already declared with different metadata", ref.ticker)
	}
	s.index[ref.ticker] = ref
	return nil
}

// Get returns the instrument declared with this ticker and true, or a zero
// instrument and false.
func (s *Instruments) Get(ticker string) (Instrument, bool) {
	ref, ok := s.index[ticker]
	return ref, ok
}

// Tickers iterates over all declared tickers in lexical order.
func (s *Instruments) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, ticker := range slices.Sorted(maps.Keys(s.index)) {
			if !yield(ticker) {
				return
			}
		}
	}
}
