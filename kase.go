package portfel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The KASE charting endpoint serves daily close history per security as
// parallel arrays (TradingView style). A one week window is enough to get
// the latest close even across holidays.
const kaseHistoryURL = "https://old.kase.kz/charts/securities/history?symbol=ALL:%s&resolution=D&from=%d&to=%d&chart_language_code=ru"

type kaseHistory struct {
	Status string    `json:"s"`
	Times  []int64   `json:"t"`
	Closes []float64 `json:"c"`
}

// KASELatestClose fetches the most recent daily close for a KASE-listed
// ticker. It returns the close and its date, or an error when the exchange
// has no history for the symbol.
func KASELatestClose(ticker string) (decimal.Decimal, Date, error) {
	now := time.Now().Unix()
	addr := fmt.Sprintf(kaseHistoryURL, ticker, now-7*86400, now+86400)

	var hist kaseHistory
	if err := jwget(daily(), addr, &hist); err != nil {
		return decimal.Decimal{}, Date{}, fmt.Errorf("could not fetch KASE history for %q: %w", ticker, err)
	}
	if len(hist.Closes) == 0 {
		return decimal.Decimal{}, Date{}, fmt.Errorf("KASE has no close history for %q", ticker)
	}

	last := len(hist.Closes) - 1
	on := Today()
	if len(hist.Times) == len(hist.Closes) {
		on = NewDate(time.Unix(hist.Times[last], 0).UTC().Date())
	}
	return decimal.NewFromFloat(hist.Closes[last]), on, nil
}
