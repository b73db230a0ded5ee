package portfel

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// txRecord is a specialized struct for decoding one JSONL line.
type txRecord struct {
	Date        Date            `json:"date"`
	Ticker      string          `json:"ticker"`
	Quantity    Quantity        `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Venue       string          `json:"venue"`
	BrokerFee   decimal.Decimal `json:"brokerFee"`
	ExchangeFee decimal.Decimal `json:"exchangeFee"`
	ClearingFee decimal.Decimal `json:"clearingFee"`
}

func (r txRecord) transaction() Transaction {
	return Transaction{
		Ticker:   r.Ticker,
		Quantity: r.Quantity,
		Price:    M(r.Price, r.Currency),
		Date:     r.Date,
		Venue:    r.Venue,
		Fees: Fees{
			Broker:   M(r.BrokerFee, r.Currency),
			Exchange: M(r.ExchangeFee, r.Currency),
			Clearing: M(r.ClearingFee, r.Currency),
		},
	}
}

// DecodeTransactions reads a stream of JSONL trade records and returns them
// sorted by date. Every record is validated; a malformed one aborts the
// decode.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec txRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode transaction on line %d: %w", line, err)
		}
		tx := rec.transaction()
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read transaction log: %w", err)
	}
	return SortTransactions(txs), nil
}

// EncodeTransactions writes the transaction log as canonical JSONL, one trade
// per line in chronological order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range SortTransactions(txs) {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("could not encode transaction %s: %w", tx, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}
