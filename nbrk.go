package portfel

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The National Bank publishes its daily official rates against the tenge as
// an RSS feed, one item per currency.
const nbrkRatesURL = "https://nationalbank.kz/rss/rates_all.xml"

// nbrkTargetCurrencies is the subset of feed currencies worth keeping.
var nbrkTargetCurrencies = map[string]bool{
	"USD": true, "EUR": true, "RUB": true, "GBP": true, "CNY": true,
}

const nbrkDateFormat = "02.01.06" // feed pubDate, e.g. "28.08.26"

/*
	<channel>
	  <item>
	    <title>USD</title>
	    <pubDate>28.08.26</pubDate>
	    <description>538.11</description>
	    <change>1.45</change>
	    <index>UP</index>
	  </item>
	...
*/
type nbrkFeed struct {
	Items []nbrkItem `xml:"channel>item"`
}

type nbrkItem struct {
	Title       string `xml:"title"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Change      string `xml:"change"`
	Index       string `xml:"index"`
}

// FetchNBRKRates downloads the National Bank rate feed and returns the
// snapshots for the target currency set. Responses are served through the
// daily disk cache, so repeated calls within a day do not hit the network.
func FetchNBRKRates() ([]RateSnapshot, error) {
	body, err := wget(daily(), nbrkRatesURL)
	if err != nil {
		return nil, fmt.Errorf("could not fetch NBRK rates: %w", err)
	}
	return parseNBRKRates(body)
}

func parseNBRKRates(body []byte) ([]RateSnapshot, error) {
	var feed nbrkFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("could not parse NBRK feed: %w", err)
	}

	var snaps []RateSnapshot
	for _, item := range feed.Items {
		if !nbrkTargetCurrencies[item.Title] {
			continue
		}
		rate, err := decimal.NewFromString(item.Description)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q for %s: %w", item.Description, item.Title, err)
		}
		on, err := time.Parse(nbrkDateFormat, item.PubDate)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for %s: %w", item.PubDate, item.Title, err)
		}
		snap := RateSnapshot{
			Currency: item.Title,
			Date:     NewDate(on.Date()),
			Rate:     rate,
		}
		// change is informational, a malformed value is not worth failing for
		if change, err := decimal.NewFromString(item.Change); err == nil {
			snap.Change = change
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}
