package portfel

import (
	"fmt"
	"sort"
	"strings"
)

// Fees holds the fee breakdown of a single trade, in the trade currency.
type Fees struct {
	Broker   Money // brokerage commission
	Exchange Money // exchange fee
	Clearing Money // clearing / counterparty fee
}

// Total returns the sum of all fee components.
func (f Fees) Total() Money {
	return f.Broker.Add(f.Exchange).Add(f.Clearing)
}

// Transaction is one executed trade, immutable once recorded. A positive
// quantity is a buy, a negative quantity is a sell. Price is the unit price
// and carries the trade currency.
type Transaction struct {
	Ticker   string
	Quantity Quantity
	Price    Money
	Date     Date
	Venue    string
	Fees     Fees
}

// NewTransaction builds a trade record. Quantity is signed: positive for a
// buy, negative for a sell.
func NewTransaction(on Date, ticker string, quantity Quantity, price Money, venue string) Transaction {
	return Transaction{
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
		Date:     on,
		Venue:    venue,
	}
}

// IsBuy reports whether the transaction adds to the position.
func (t Transaction) IsBuy() bool { return t.Quantity.IsPositive() }

// IsSell reports whether the transaction reduces the position.
func (t Transaction) IsSell() bool { return t.Quantity.IsNegative() }

// Currency returns the trade currency.
func (t Transaction) Currency() string { return t.Price.Currency() }

// Amount returns the absolute trade amount (|quantity| * unit price), fees
// excluded.
func (t Transaction) Amount() Money {
	q := t.Quantity
	if q.IsNegative() {
		q = q.Neg()
	}
	return t.Price.Mul(q)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s @ %s", t.Date, t.Ticker, t.Quantity, t.Price)
}

// ValidationError reports a malformed transaction. It is fatal: a transaction
// failing validation never reaches the lot ledger.
type ValidationError struct {
	Tx      Transaction
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction %s: %s", e.Tx, strings.Join(e.Reasons, "; "))
}

// Validate checks a transaction for correctness. It returns a *ValidationError
// listing all failures, or nil.
func (t Transaction) Validate() error {
	var reasons []string
	if t.Ticker == "" {
		reasons = append(reasons, "ticker is missing")
	}
	if t.Quantity.IsZero() {
		reasons = append(reasons, "quantity is zero")
	}
	if !t.Price.IsPositive() {
		reasons = append(reasons, "price is not positive")
	}
	if t.Price.Currency() == "" {
		reasons = append(reasons, "currency is missing")
	}
	if t.Date.IsZero() {
		reasons = append(reasons, "date is missing")
	}
	if len(reasons) > 0 {
		return &ValidationError{Tx: t, Reasons: reasons}
	}
	return nil
}

// ValidateAll checks every transaction and returns the first validation
// failure, or nil if all records are well formed.
func ValidateAll(txs []Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SortTransactions returns a copy of txs sorted by trade date. The sort is
// stable: same-date transactions keep their original order.
func SortTransactions(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("ticker", t.Ticker)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Append("currency", t.Price.Currency())
	w.Optional("venue", t.Venue)
	if !t.Fees.Total().IsZero() {
		w.Optional("brokerFee", t.Fees.Broker.Decimal())
		w.Optional("exchangeFee", t.Fees.Exchange.Decimal())
		w.Optional("clearingFee", t.Fees.Clearing.Decimal())
	}
	return w.MarshalJSON()
}
