//Package hourly aggregates glucose readings into hour-of-day buckets
package hourly

import (
	"math"
	"sort"

	"github.com/ptek/dv/dexcom"
	"gonum.org/v1/gonum/stat"
)

//Stats holds the aggregated glucose values of one hour-of-day bucket
type Stats struct {
	//Hour of the day in [0,23]
	Hour int
	Mean float64
	//Percentiles of the glucose values observed during Hour
	P5, P25, P75, P95 float64
}

//Compute groups readings by the hour of their timestamp and returns one Stats
//entry per distinct hour, sorted by hour. Hours without readings get no entry.
func Compute(readings []dexcom.Reading) []Stats {
	buckets := make(map[int][]float64)
	for _, r := range readings {
		hour := r.Timestamp.Hour()
		buckets[hour] = append(buckets[hour], float64(r.Value))
	}

	hours := make([]int, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	stats := make([]Stats, 0, len(hours))
	for _, hour := range hours {
		values := buckets[hour]
		sort.Float64s(values)
		stats = append(stats, Stats{
			Hour: hour,
			Mean: stat.Mean(values, nil),
			P5:   quantile(values, 0.05),
			P25:  quantile(values, 0.25),
			P75:  quantile(values, 0.75),
			P95:  quantile(values, 0.95),
		})
	}
	return stats
}

//quantile selects the nearest-rank quantile q from the ascending sorted values.
//The selected index is round(q*(n-1)), the same rule the Dexcom export tooling
//applies; gonum's stat.Quantile only offers the empirical and linear rules
func quantile(sorted []float64, q float64) float64 {
	idx := int(math.Round(q * float64(len(sorted)-1)))
	return sorted[idx]
}
