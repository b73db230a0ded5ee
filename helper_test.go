package portfel

// KZT is a helper for tests to create tenge money from a const.
func KZT(v float64) Money { return M(v, "KZT") }

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// buy is a helper to build a buy transaction from consts.
func buy(on, ticker string, qty float64, price Money, venue string) Transaction {
	return NewTransaction(MustParseDate(on), ticker, Q(qty), price, venue)
}

// sell is a helper to build a sell transaction from consts.
func sell(on, ticker string, qty float64, price Money, venue string) Transaction {
	return NewTransaction(MustParseDate(on), ticker, Q(-qty), price, venue)
}
