// Package curve implements the persisted curve record, its fixed binary
// layout, parameter validation, and the deterministic fixed-point
// interpolation engine.
//
// A curve is a piecewise-linear function given by up to 130 unsigned samples
// on a uniform x grid. All geometry values (x0, x_step, y samples) are
// unsigned 32-bit integers scaled by 10^decimals, decimals in 0..9.
//
// # Critical patterns
//
// Tagged decode: raw bytes are only reinterpreted as a Record after the
// 8-byte discriminator and the layout version have been verified. Bytes that
// fail either gate are rejected with a LayoutError, never partially trusted.
//
// Validation before commit: CheckParams is the sole gate protecting the
// interpolation arithmetic from overflow. It must pass before any record is
// created or altered; Lookup assumes it has.
//
// Checked arithmetic: every computation over geometry goes through
// internal/decimal, which errors on overflow instead of wrapping. Floating
// point is never used for stored or compared geometry values.
package curve
