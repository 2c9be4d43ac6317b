package planner

import (
	"math"
	"sort"
	"time"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

const (
	// LateArrivalHour is the first arrival hour (24h clock) whose arrival day
	// leaves no usable activity time.
	LateArrivalHour = 19
	// EarlyDepartureHour is the last departure hour whose departure day leaves
	// no usable activity time.
	EarlyDepartureHour = 12
)

// AllocationInput is everything Allocate needs.
// Weights are per-occurrence activity counts aligned with CityOrder; missing
// entries count as zero. ArrivalHour and DepartureHour are optional.
type AllocationInput struct {
	CityOrder     []string
	TotalDays     int
	Weights       []int
	StartDate     time.Time
	ArrivalHour   *int
	DepartureHour *int
}

// Allocate splits TotalDays across the occurrences of CityOrder and lays them
// out on the calendar from StartDate.
//
// Every occurrence gets one day first and the remainder is shared in
// proportion to Weights, rounded half away from zero. Rounding drift is then
// settled one day at a time over the occurrences ordered by proportional share,
// largest first, in both directions. When there are fewer days than
// occurrences the days are spread evenly with the earlier occurrences taking
// the extras, and some occurrences get none.
func Allocate(in AllocationInput) []domain.CityDayAllocation {
	n := len(in.CityOrder)
	if n == 0 {
		return []domain.CityDayAllocation{}
	}
	total := max(in.TotalDays, 0)

	var days []int
	if total < n {
		days = evenSplit(total, n)
	} else {
		days = weightedSplit(total-n, in.Weights, n)
		for i := range days {
			days[i]++
		}
	}

	out := make([]domain.CityDayAllocation, n)
	occurrence := make(map[string]int, n)
	running := in.StartDate
	for i, label := range in.CityOrder {
		key := domain.NormalizeCity(label)
		d := days[i]

		end := running
		if d > 0 {
			end = running.AddDate(0, 0, d-1)
		}
		out[i] = domain.CityDayAllocation{
			CityLabel:         label,
			OccurrenceIndex:   occurrence[key],
			DayCount:          d,
			EffectiveDayCount: d,
			StartDate:         running,
			EndDate:           end,
		}
		occurrence[key]++
		running = running.AddDate(0, 0, d)
	}

	if in.ArrivalHour != nil && *in.ArrivalHour >= LateArrivalHour {
		trimEdgeDay(&out[0])
	}
	if in.DepartureHour != nil && *in.DepartureHour <= EarlyDepartureHour {
		trimEdgeDay(&out[n-1])
	}
	return out
}

// trimEdgeDay drops one usable day, never going below one.
// Occurrences that got no days at all are left at zero.
func trimEdgeDay(a *domain.CityDayAllocation) {
	if a.DayCount == 0 {
		return
	}
	a.EffectiveDayCount = max(1, a.EffectiveDayCount-1)
}

// evenSplit gives each of n slots total/n, plus one to the first total%n slots.
func evenSplit(total, n int) []int {
	out := make([]int, n)
	base, extra := total/n, total%n
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// weightedSplit shares remaining across n slots in proportion to weights.
func weightedSplit(remaining int, weights []int, n int) []int {
	w := make([]float64, n)
	var sum float64
	for i := 0; i < n && i < len(weights); i++ {
		if weights[i] > 0 {
			w[i] = float64(weights[i])
			sum += w[i]
		}
	}
	if sum == 0 || remaining == 0 {
		return evenSplit(remaining, n)
	}

	share := make([]float64, n)
	out := make([]int, n)
	allocated := 0
	for i := range w {
		share[i] = w[i] / sum * float64(remaining)
		out[i] = int(math.Round(share[i]))
		allocated += out[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return share[order[a]] > share[order[b]]
	})

	drift := remaining - allocated
	for i := 0; drift != 0; i++ {
		idx := order[i%n]
		switch {
		case drift > 0:
			out[idx]++
			drift--
		case out[idx] > 0:
			out[idx]--
			drift++
		}
	}
	return out
}
