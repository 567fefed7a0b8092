// Package metrics derives dashboard and analytics aggregates from already
// fetched entity collections. Every function is pure: no I/O, no clock, and
// the same input always yields the same output.
//
// Money is accumulated in decimal.Decimal so that long sums of float inputs
// do not drift, and converted back to float64 only at the edge.
package metrics
