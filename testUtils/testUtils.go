//Package testUtils bundles helpers shared by the package tests
package testUtils

import (
	"math"
	"time"

	"github.com/ptek/dv/dexcom"
)

//FloatEqUpTo returns true if abs(a-b)<=maxDiff
func FloatEqUpTo(a, b, maxDiff float64) bool {
	return math.Abs(a-b) <= maxDiff
}

//ReadingsAtHour builds one reading per value, all timestamped within the given
//hour of an arbitrary fixed day, spaced a minute apart
func ReadingsAtHour(hour int, values ...int) []dexcom.Reading {
	base := time.Date(2024, time.March, 5, hour, 0, 0, 0, time.UTC)
	readings := make([]dexcom.Reading, len(values))
	for i, v := range values {
		readings[i] = dexcom.Reading{
			Timestamp: base.Add(time.Duration(i%60) * time.Minute),
			Value:     v,
		}
	}
	return readings
}

//Repeat returns a slice with n copies of value
func Repeat(value, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = value
	}
	return s
}
