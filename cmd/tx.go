package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/akzhol/portfel"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txCmd holds the flags shared by the 'buy' and 'sell' subcommands.
type txCmd struct {
	date     string
	ticker   string
	quantity string
	price    string
	currency string
	venue    string
	noFees   bool
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfel.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker symbol")
	f.StringVar(&c.quantity, "q", "", "Quantity of shares")
	f.StringVar(&c.price, "p", "", "Unit price")
	f.StringVar(&c.currency, "c", portfel.BaseCurrency, "Trade currency")
	f.StringVar(&c.venue, "v", "KASE", "Trading venue (KASE, AIX, NASDAQ, ...)")
	f.BoolVar(&c.noFees, "no-fees", false, "Do not record brokerage fees for this trade")
}

// record parses the shared flags and appends the trade to the ledger. The
// sign of the quantity is set by the caller.
func (c *txCmd) record(sell bool) subcommands.ExitStatus {
	on, err := portfel.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	qty, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
		return subcommands.ExitUsageError
	}

	quantity := portfel.Q(qty)
	if sell {
		quantity = quantity.Neg()
	}
	tx := portfel.NewTransaction(on, c.ticker, quantity, portfel.M(price, c.currency), c.venue)
	if !c.noFees {
		if sell {
			tx.Fees = portfel.CalcSellFees(c.venue, quantity, tx.Price)
		} else {
			tx.Fees = portfel.CalcFees(c.venue, quantity, tx.Price)
		}
	}
	if err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return EncodeTransaction(tx)
}

type buyCmd struct{ txCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy in the ledger" }
func (*buyCmd) Usage() string {
	return `portfel buy -t <ticker> -q <quantity> -p <price> [-c <currency>] [-v <venue>] [-d <date>]

  Appends a buy to the ledger. Unless -no-fees is set, the brokerage fee
  schedule of the venue is applied and recorded with the trade.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(false)
}

type sellCmd struct{ txCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell in the ledger" }
func (*sellCmd) Usage() string {
	return `portfel sell -t <ticker> -q <quantity> -p <price> [-c <currency>] [-v <venue>] [-d <date>]

  Appends a sell to the ledger. The quantity is given unsigned.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(true)
}
