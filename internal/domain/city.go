package domain

import "strings"

// NormalizeCity returns the comparison form of a city label: trimmed and lower-cased.
// Two labels name the same city when their normalized forms are equal.
func NormalizeCity(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
