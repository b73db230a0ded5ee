// Package cmd implements the CLI application to track a portfolio.
package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"iter"
	"log"
	"os"

	"github.com/akzhol/portfel"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&returnsCmd{}, "reports")
	c.Register(&alertsCmd{}, "reports")
	c.Register(&taxesCmd{}, "reports")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&logCmd{}, "transactions")

	c.Register(&ratesCmd{}, "market data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var instrumentsFile = flag.String("instruments-file", "instruments.jsonl", "Path to the instrument metadata file (JSONL format)")
var ratesFile = flag.String("rates-file", "rates.jsonl", "Path to the exchange-rate snapshots file (JSONL format)")

// DecodeLedger loads the transaction log from the app ledger file. A missing
// file is an empty ledger.
func DecodeLedger() ([]portfel.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting with an empty ledger")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return portfel.DecodeTransactions(f)
}

// EncodeTransaction appends a single transaction into the app ledger file.
func EncodeTransaction(tx portfel.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := portfel.EncodeTransactions(f, []portfel.Transaction{tx}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// instrumentRecord is one line of the instruments file.
type instrumentRecord struct {
	Ticker   string `json:"ticker"`
	Category string `json:"category"`
	Currency string `json:"currency"`
	ISIN     string `json:"isin"`
}

// DecodeInstruments loads the instrument metadata and the ticker → ISIN index
// from the app instruments file. A missing file yields empty metadata.
func DecodeInstruments() (*portfel.Instruments, map[string]string, error) {
	refs := portfel.NewInstruments()
	isins := make(map[string]string)

	data, err := os.ReadFile(*instrumentsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, instruments file does not exist, tickers will be uncategorized")
		return refs, isins, nil
	}
	if err != nil {
		return nil, nil, err
	}

	for line := range jsonLines(data) {
		var rec instrumentRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, nil, fmt.Errorf("could not decode instrument: %w", err)
		}
		if err := refs.Add(portfel.NewInstrument(rec.Ticker, rec.Category, rec.Currency)); err != nil {
			return nil, nil, err
		}
		if rec.ISIN != "" {
			isins[rec.Ticker] = rec.ISIN
		}
	}
	return refs, isins, nil
}

// DecodeRates loads previously saved exchange-rate snapshots. A missing file
// yields an empty table.
func DecodeRates() (*portfel.RateTable, error) {
	rates := portfel.NewRateTable("")

	data, err := os.ReadFile(*ratesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return rates, nil
	}
	if err != nil {
		return nil, err
	}

	for line := range jsonLines(data) {
		var snap portfel.RateSnapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			return nil, fmt.Errorf("could not decode rate snapshot: %w", err)
		}
		rates.Append(snap)
	}
	return rates, nil
}

// SaveRates appends snapshots to the app rates file.
func SaveRates(snaps []portfel.RateSnapshot) error {
	f, err := os.OpenFile(*ratesFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, snap := range snaps {
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// jsonLines iterates over the non-empty lines of a JSONL file.
func jsonLines(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// loadRates merges the saved snapshots with today's official feed. A feed
// failure is not fatal: the saved snapshots still serve past dates.
func loadRates() (*portfel.RateTable, error) {
	rates, err := DecodeRates()
	if err != nil {
		return nil, err
	}
	snaps, err := portfel.FetchNBRKRates()
	if err != nil {
		log.Printf("warning, could not fetch official rates: %v", err)
		return rates, nil
	}
	for _, snap := range snaps {
		rates.Append(snap)
	}
	return rates, nil
}

// loadPrices fetches the latest close for every open ticker. Tickers whose
// providers fail are left without a price; the engine reports them as
// excluded instead of failing the whole report.
func loadPrices(book *portfel.Book, refs *portfel.Instruments) *portfel.PriceTable {
	prices := portfel.NewPriceTable()
	for ticker := range book.Tickers() {
		currency := portfel.BaseCurrency
		if ref, ok := refs.Get(ticker); ok {
			currency = ref.Currency()
		}
		price, on, err := portfel.LookupPrice(ticker, currency)
		if err != nil {
			log.Printf("warning, no price for %s: %v", ticker, err)
			continue
		}
		prices.Append(ticker, on, price)
	}
	return prices
}
