package portfel

import (
	"errors"
	"reflect"
	"testing"
)

func TestIngest_MatchedPair(t *testing.T) {
	// buy 10 @ 100, sell 5 @ 110: one matched pair and a 5-share remainder.
	book, err := Ingest([]Transaction{
		buy("2024-01-10", "HSBK", 10, KZT(100), "KASE"),
		sell("2024-02-10", "HSBK", 5, KZT(110), "KASE"),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if len(book.Matches) != 1 {
		t.Fatalf("expected 1 matched pair, got %d", len(book.Matches))
	}
	pair := book.Matches[0]
	if !pair.Quantity.Equal(Q(5)) {
		t.Errorf("matched quantity = %s, want 5", pair.Quantity)
	}
	if !pair.BuyPrice.Equal(KZT(100)) || !pair.SellPrice.Equal(KZT(110)) {
		t.Errorf("matched prices = %s/%s, want 100/110", pair.BuyPrice, pair.SellPrice)
	}
	if !pair.RealizedGain().Equal(KZT(50)) {
		t.Errorf("realized gain = %s, want 50", pair.RealizedGain())
	}

	lots := book.OpenLots("HSBK")
	if len(lots) != 1 {
		t.Fatalf("expected 1 open lot, got %d", len(lots))
	}
	if !lots[0].Quantity.Equal(Q(5)) || !lots[0].Price.Equal(KZT(100)) {
		t.Errorf("open lot = %s @ %s, want 5 @ 100", lots[0].Quantity, lots[0].Price)
	}
}

func TestIngest_SellSpansLots(t *testing.T) {
	book, err := Ingest([]Transaction{
		buy("2024-01-01", "KCEL", 5, KZT(100), "KASE"),
		buy("2024-01-15", "KCEL", 5, KZT(120), "KASE"),
		sell("2024-02-01", "KCEL", 7, KZT(130), "KASE"),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// One pair per lot consumed, oldest first.
	if len(book.Matches) != 2 {
		t.Fatalf("expected 2 matched pairs, got %d", len(book.Matches))
	}
	if !book.Matches[0].Quantity.Equal(Q(5)) || !book.Matches[0].BuyPrice.Equal(KZT(100)) {
		t.Errorf("first pair = %s @ %s, want 5 @ 100", book.Matches[0].Quantity, book.Matches[0].BuyPrice)
	}
	if !book.Matches[1].Quantity.Equal(Q(2)) || !book.Matches[1].BuyPrice.Equal(KZT(120)) {
		t.Errorf("second pair = %s @ %s, want 2 @ 120", book.Matches[1].Quantity, book.Matches[1].BuyPrice)
	}
	if !book.Position("KCEL").Equal(Q(3)) {
		t.Errorf("remaining position = %s, want 3", book.Position("KCEL"))
	}
}

func TestIngest_FIFOConservation(t *testing.T) {
	// Without oversell, open quantity == buys - sells.
	txs := []Transaction{
		buy("2024-01-01", "AAPL", 10, USD(180), "NASDAQ"),
		buy("2024-02-01", "AAPL", 7, USD(190), "NASDAQ"),
		sell("2024-03-01", "AAPL", 4, USD(200), "NASDAQ"),
		buy("2024-04-01", "AAPL", 3, USD(170), "NASDAQ"),
		sell("2024-05-01", "AAPL", 9, USD(210), "NASDAQ"),
	}
	book, err := Ingest(txs)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(book.Oversells) != 0 {
		t.Fatalf("unexpected oversells: %v", book.Oversells)
	}
	if want := Q(10 + 7 + 3 - 4 - 9); !book.Position("AAPL").Equal(want) {
		t.Errorf("position = %s, want %s", book.Position("AAPL"), want)
	}
	for _, lot := range book.OpenLots("AAPL") {
		if lot.Quantity.IsNegative() {
			t.Errorf("negative lot quantity: %s", lot.Quantity)
		}
	}
}

func TestIngest_Idempotence(t *testing.T) {
	txs := []Transaction{
		buy("2024-01-01", "KZAP", 20, KZT(14000), "KASE"),
		sell("2024-01-20", "KZAP", 8, KZT(15500), "KASE"),
		buy("2024-02-01", "KZAP", 5, KZT(14800), "KASE"),
	}
	first, err := Ingest(txs)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	second, err := Ingest(txs)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same log produced different books")
	}
}

func TestIngest_Oversell(t *testing.T) {
	// Selling past the queue must be observable, not silently dropped.
	book, err := Ingest([]Transaction{
		buy("2024-01-01", "GOOG", 10, USD(150), "NASDAQ"),
		sell("2024-02-01", "GOOG", 15, USD(160), "NASDAQ"),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(book.Oversells) != 1 {
		t.Fatalf("expected 1 oversell, got %d", len(book.Oversells))
	}
	over := book.Oversells[0]
	if over.Ticker != "GOOG" || !over.Quantity.Equal(Q(5)) {
		t.Errorf("oversell = %s %s, want GOOG 5", over.Ticker, over.Quantity)
	}
	// The matched part is still accounted for, and no short position exists.
	if len(book.Matches) != 1 || !book.Matches[0].Quantity.Equal(Q(10)) {
		t.Errorf("matches = %v, want one pair of 10", book.Matches)
	}
	if !book.Position("GOOG").IsZero() {
		t.Errorf("position = %s, want 0", book.Position("GOOG"))
	}
}

func TestIngest_SameDateKeepsOrder(t *testing.T) {
	// Stable sort: a same-date buy recorded before the sell stays first.
	book, err := Ingest([]Transaction{
		buy("2024-03-01", "KMG", 10, KZT(12000), "KASE"),
		sell("2024-03-01", "KMG", 10, KZT(12500), "KASE"),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(book.Oversells) != 0 {
		t.Errorf("same-date buy should be available to the sell, got oversells %v", book.Oversells)
	}
	if len(book.Matches) != 1 {
		t.Errorf("expected 1 matched pair, got %d", len(book.Matches))
	}
}

func TestIngest_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		tx   Transaction
	}{
		{"zero quantity", NewTransaction(MustParseDate("2024-01-01"), "HSBK", Q(0), KZT(100), "KASE")},
		{"negative price", NewTransaction(MustParseDate("2024-01-01"), "HSBK", Q(10), KZT(-5), "KASE")},
		{"missing ticker", NewTransaction(MustParseDate("2024-01-01"), "", Q(10), KZT(100), "KASE")},
		{"missing date", NewTransaction(Date{}, "HSBK", Q(10), KZT(100), "KASE")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Ingest([]Transaction{tc.tx})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Ingest() error = %v, want *ValidationError", err)
			}
		})
	}
}
