package portfel

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTransactions(t *testing.T) {
	log := `{"date":"2024-02-10","ticker":"AAPL","quantity":5,"price":180,"currency":"USD","venue":"NASDAQ"}
{"date":"2024-01-10","ticker":"HSBK","quantity":10,"price":100,"currency":"KZT","venue":"KASE"}

{"date":"2024-03-10","ticker":"AAPL","quantity":-2,"price":195,"currency":"USD","venue":"NASDAQ","brokerFee":0.98,"exchangeFee":0.01}
`
	txs, err := DecodeTransactions(strings.NewReader(log))
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("decoded %d transactions, want 3", len(txs))
	}
	// The decoder returns the log sorted by date.
	if txs[0].Ticker != "HSBK" {
		t.Errorf("first transaction = %s, want the HSBK buy", txs[0])
	}
	if !txs[1].Quantity.Equal(Q(5)) || !txs[1].Price.Equal(USD(180)) {
		t.Errorf("second transaction = %s", txs[1])
	}
	last := txs[2]
	if !last.IsSell() {
		t.Errorf("last transaction = %s, want a sell", last)
	}
	if !last.Fees.Broker.Equal(USD(0.98)) || !last.Fees.Exchange.Equal(USD(0.01)) {
		t.Errorf("fees = %+v", last.Fees)
	}
}

func TestDecodeTransactions_ReportsLine(t *testing.T) {
	log := `{"date":"2024-01-10","ticker":"HSBK","quantity":10,"price":100,"currency":"KZT"}
{"date":"2024-01-11","ticker":"HSBK","quantity":0,"price":100,"currency":"KZT"}
`
	_, err := DecodeTransactions(strings.NewReader(log))
	if err == nil {
		t.Fatal("malformed log accepted")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want a line number", err)
	}
}

func TestDecodeTransactions_BadJSON(t *testing.T) {
	if _, err := DecodeTransactions(strings.NewReader("{not json}\n")); err == nil {
		t.Fatal("bad JSON accepted")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	txs := []Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
		sell("2024-02-10", "HSBK", 5, KZT(110), "KASE"),
	}
	txs[0].Fees = CalcFees("KASE", txs[0].Quantity, txs[0].Price)

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, txs); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("encoded %d lines, want 2:\n%s", got, buf.String())
	}

	back, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("round trip lost transactions: %v", back)
	}
	for i := range txs {
		if back[i].Ticker != txs[i].Ticker || !back[i].Quantity.Equal(txs[i].Quantity) ||
			!back[i].Price.Equal(txs[i].Price) || back[i].Date != txs[i].Date {
			t.Errorf("transaction %d = %s, want %s", i, back[i], txs[i])
		}
	}
	if !back[0].Fees.Broker.Equal(txs[0].Fees.Broker) {
		t.Errorf("fees = %s, want %s", back[0].Fees.Broker, txs[0].Fees.Broker)
	}
}

func TestEncodeTransactions_KeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, []Transaction{buy("2024-01-10", "HSBK", 10, KZT(100), "KASE")}); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	want := `{"date":"2024-01-10","ticker":"HSBK","quantity":10,"price":100,"currency":"KZT","venue":"KASE"}` + "\n"
	if buf.String() != want {
		t.Errorf("encoded = %s, want %s", buf.String(), want)
	}
}
