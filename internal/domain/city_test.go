package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

func TestNormalizeCity_Unicode(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"Lisbon", "lisbon"},
		{"  Porto\t", "PORTO"},
		{"ZÜRICH", "Zürich"},
		{"\nKraków ", "KRAKÓW"},
	}
	for _, c := range cases {
		assert.Equal(t, domain.NormalizeCity(c.a), domain.NormalizeCity(c.b), "%q vs %q", c.a, c.b)
	}
	assert.NotEqual(t, domain.NormalizeCity("Zurich"), domain.NormalizeCity("Zürich"))
}
