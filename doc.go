// Package fund implements the accounting engine for a pooled PoE2 trading
// fund: net-asset-value computation, unit pricing, deposit/withdrawal
// requests with price-locking, and high-water-mark performance fees.
//
// The fund is a single aggregate value loaded from and saved to a snapshot
// store; every command reads the whole snapshot, validates, computes, and
// writes the whole snapshot back, or fails without touching it.
package fund
