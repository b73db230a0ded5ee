package portfel

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d"

// YahooLatestClose fetches the latest quote for a ticker from the Yahoo
// chart endpoint.
func YahooLatestClose(ticker string) (decimal.Decimal, Date, error) {
	addr := fmt.Sprintf(yahooChartURL, url.PathEscape(ticker))
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return decimal.Decimal{}, Date{}, fmt.Errorf("could not fetch Yahoo chart for %q: %w", ticker, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, Date{}, fmt.Errorf("error parsing Yahoo chart for %q: %q %w", ticker, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, Date{}, fmt.Errorf("error parsing Yahoo chart for %q: %q not a float: %v", ticker, path, jval)
	}
	return decimal.NewFromFloat(val), Today(), nil
}

// LookupPrice resolves the current reference price for an instrument. Tenge
// instruments resolve on KASE only; any other currency tries Yahoo first and
// falls back to KASE, the exchange of last resort for cross-listed tickers.
func LookupPrice(ticker, currency string) (decimal.Decimal, Date, error) {
	if currency == BaseCurrency {
		return KASELatestClose(ticker)
	}
	price, on, err := YahooLatestClose(ticker)
	if err == nil {
		return price, on, nil
	}
	if price, on, kaseErr := KASELatestClose(ticker); kaseErr == nil {
		return price, on, nil
	}
	return decimal.Decimal{}, Date{}, err
}

// JurisdictionFromISINs builds a JurisdictionFunc over a static ticker→ISIN
// mapping, as exported from the identifier-lookup service. The jurisdiction
// code is the two-letter ISIN country prefix.
func JurisdictionFromISINs(isins map[string]string) JurisdictionFunc {
	return func(ticker, venue string) (string, bool) {
		isin, ok := isins[ticker]
		if !ok || len(isin) < 2 {
			return "", false
		}
		return isin[:2], true
	}
}
