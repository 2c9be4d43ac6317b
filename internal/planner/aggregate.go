// Package planner holds the itinerary composition engine: the preference
// aggregator, the city-day allocator and the selection state machine.
// Everything here is synchronous and free of I/O; callers load state from the
// repo layer and persist whatever the engine returns.
package planner

import (
	"strings"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// InclusionPolicy decides which feedback items count towards a city's weight.
type InclusionPolicy func(domain.ActivityFeedback) bool

// IncludeLocated counts every item that names a location, whatever its status.
func IncludeLocated(f domain.ActivityFeedback) bool {
	return domain.NormalizeCity(f.Location) != ""
}

// IncludeLiked counts only liked items.
func IncludeLiked(f domain.ActivityFeedback) bool {
	return f.Status == domain.StatusLiked
}

// PolicyByName resolves a configured policy name. ok is false for unknown names.
func PolicyByName(name string) (policy InclusionPolicy, ok bool) {
	switch name {
	case "", "located":
		return IncludeLocated, true
	case "liked":
		return IncludeLiked, true
	}
	return nil, false
}

// CountPerOccurrence returns, for every index of cityOrder, the number of
// accepted feedback items attributed to that visit.
//
// Items are grouped by normalized location. A city visited T times with C items
// hands each visit a contiguous slice of ceil(C/T) items, so the last visit may
// receive fewer. Blank locations are ignored regardless of policy.
func CountPerOccurrence(feedback []domain.ActivityFeedback, cityOrder []string, policy InclusionPolicy) []int {
	if policy == nil {
		policy = IncludeLocated
	}

	byCity := make(map[string]int)
	for _, f := range feedback {
		city := domain.NormalizeCity(f.Location)
		if city == "" || !policy(f) {
			continue
		}
		byCity[city]++
	}

	occurrences := make(map[string]int, len(cityOrder))
	for _, c := range cityOrder {
		occurrences[domain.NormalizeCity(c)]++
	}

	counts := make([]int, len(cityOrder))
	seen := make(map[string]int, len(cityOrder))
	for i, c := range cityOrder {
		city := domain.NormalizeCity(c)
		k := seen[city]
		seen[city]++

		total := byCity[city]
		if total == 0 {
			continue
		}
		per := ceilDiv(total, occurrences[city])
		start := k * per
		end := min(start+per, total)
		if end > start {
			counts[i] = end - start
		}
	}
	return counts
}

// CityPreference holds per-status counts for one city.
type CityPreference struct {
	CityLabel string `json:"city_label"`
	Pending   int    `json:"pending"`
	Liked     int    `json:"liked"`
	Disliked  int    `json:"disliked"`
	Maybe     int    `json:"maybe"`
}

// Summarize reduces feedback to per-city, per-status counts.
// Cities appear in order of first appearance; the label kept is the first
// spelling seen. Items without a location are skipped.
func Summarize(feedback []domain.ActivityFeedback) []CityPreference {
	index := make(map[string]int)
	var out []CityPreference
	for _, f := range feedback {
		city := domain.NormalizeCity(f.Location)
		if city == "" {
			continue
		}
		i, ok := index[city]
		if !ok {
			i = len(out)
			index[city] = i
			out = append(out, CityPreference{CityLabel: strings.TrimSpace(f.Location)})
		}
		switch f.Status {
		case domain.StatusPending:
			out[i].Pending++
		case domain.StatusLiked:
			out[i].Liked++
		case domain.StatusDisliked:
			out[i].Disliked++
		case domain.StatusMaybe:
			out[i].Maybe++
		}
	}
	if out == nil {
		return []CityPreference{}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
