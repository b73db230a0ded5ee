// Package portfel implements cost-basis accounting and return analytics for a
// multi-currency security portfolio.
//
// The engine is a pure computation over in-memory inputs: a chronological
// transaction log, a table of reference prices, and a table of exchange rates
// against the base currency. From those it derives FIFO lots, point-in-time
// valuations, money-weighted (XIRR) and time-weighted returns, gain/loss
// threshold alerts, and a capital-gains tax report.
//
// All price, quantity and money arithmetic is exact, backed by
// shopspring/decimal. External data acquisition (prices, rates, identifiers)
// lives in dedicated provider files and is performed before invoking the
// engine.
package portfel
