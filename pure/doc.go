// Package pure memoizes pure functions.
//
// Tableize treats a referentially transparent function as a lazily filled
// table: the first call with given inputs computes the value, later calls read
// it back. Only use it on functions whose result depends on nothing but their
// arguments.
//
// Tables are bounded. Entries live in two generations; when the active one
// reaches its size limit the older generation is dropped and a fresh one
// becomes active, so memory stays within about twice the configured size.
//
// Inputs must be comparable or implement fmt.Stringer. float64 inputs work,
// with the usual caveat that NaN never matches itself and is recomputed.
package pure
