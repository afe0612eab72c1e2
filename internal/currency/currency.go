// Package currency is the pure conversion layer between the canonical
// storage currency and a configured display currency. It touches no storage:
// rate and currency code live in the settings table and are supplied by
// callers. Every persisted monetary field is canonical; conversion happens
// only when rendering and when parsing user-entered amounts back.
package currency

// CanonicalCode is the single currency in which all amounts are persisted.
const CanonicalCode = "AED"

// ToDisplay converts a canonical amount into the display currency.
// A rate of exactly 1 is the identity case and needs no special handling.
func ToDisplay(amountCanonical, rate float64) float64 {
	return amountCanonical * rate
}

// ToCanonical converts a display-currency amount back for storage.
// rate must be > 0; the settings layer never stores a non-positive rate.
func ToCanonical(amountDisplay, rate float64) float64 {
	return amountDisplay / rate
}
