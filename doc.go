// Package wealthdash derives portfolio analytics from the raw payloads of a
// brokerage aggregator: positions, transactions, portfolio value history,
// institutions and the USD/CAD rate history.
//
// The computation is a pipeline of pure functions, assembled by Compute:
//   - Currency normalization: a day-indexed rate index converts USD amounts
//     into CAD, the reporting currency.
//   - Time series alignment: sparse daily arrays become day-indexed values.
//   - Transaction classification: each raw record becomes a Trade, a Split, a
//     CashFlow or an Unclassified transaction, and the cash flows are totalled
//     per day.
//   - Portfolio series: daily values are merged with the running deposits to
//     give the profit and loss of every day.
//   - Lot matching: trades are replayed per account and symbol against an
//     average cost lot, each opposing trade realizing a ClosedPosition.
//   - Position enrichment: current holdings get the history of their symbol.
//
// Missing data never fails a run: days without value or rate are skipped,
// unknown transaction types are ignored. Compute keeps no state between calls.
package wealthdash
