// Package salegovernance implements sale governance and settlement inside the
// asset-governance context.
//
// The module owns the motion lifecycle (propose, vote, withdraw, finalize),
// weighted vote tallying against the share ledger, the two-phase asset
// hand-off protocol with compensating refund on failure, and the pro-rata
// cashout of sale proceeds. Two known gaps are kept deliberately rather than
// silently corrected: ballots are not deduplicated across repeated casts, and
// a threshold-rejected finalize neither consumes nor refunds the attached
// sale deposit. See DESIGN.md.
package salegovernance
