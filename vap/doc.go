// Package vap computes the volume-at-price multiplier for a chart: the
// number of price ticks folded into one histogram bucket.
//
// A Study is called once per host update. It recomputes only when the
// visible bar range moved, scans the bars it needs, derives a multiplier
// with either the adaptive or the legacy algorithm, and writes it back to
// the host only when it differs from the active value.
package vap
