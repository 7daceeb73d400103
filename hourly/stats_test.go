package hourly

import (
	"testing"

	"github.com/ptek/dv/dexcom"
	"github.com/ptek/dv/testUtils"
)

const maxDiff = 1e-9

func TestCompute_EmptyInput(t *testing.T) {
	if stats := Compute(nil); len(stats) != 0 {
		t.Errorf("got %v buckets, want 0", len(stats))
	}
}

func TestCompute_OneBucketPerDistinctHour(t *testing.T) {
	var readings []dexcom.Reading
	hours := []int{23, 6, 6, 12, 6, 23}
	for _, h := range hours {
		readings = append(readings, testUtils.ReadingsAtHour(h, 100)...)
	}

	stats := Compute(readings)

	wantHours := []int{6, 12, 23}
	if len(stats) != len(wantHours) {
		t.Fatalf("got %v buckets, want %v", len(stats), len(wantHours))
	}
	for i, want := range wantHours {
		if stats[i].Hour != want {
			t.Errorf("stats[%v].Hour = %v, want %v", i, stats[i].Hour, want)
		}
	}
}

func TestCompute_SingleReading(t *testing.T) {
	stats := Compute(testUtils.ReadingsAtHour(0, 100))

	if len(stats) != 1 {
		t.Fatalf("got %v buckets, want 1", len(stats))
	}
	s := stats[0]
	for name, got := range map[string]float64{
		"Mean": s.Mean, "P5": s.P5, "P25": s.P25, "P75": s.P75, "P95": s.P95,
	} {
		if !testUtils.FloatEqUpTo(got, 100, maxDiff) {
			t.Errorf("%v = %v, want 100", name, got)
		}
	}
}

//TestCompute_PercentileFlipPoints feeds buckets of 100 readings that sit
//exactly on either side of each percentile's selection boundary
func TestCompute_PercentileFlipPoints(t *testing.T) {
	tests := []struct {
		name      string
		highCount int
		want      Stats
	}{
		{
			name:      "5th percentile holds at 5 low readings",
			highCount: 95,
			want:      Stats{Mean: 95, P5: 100, P25: 100, P75: 100, P95: 100},
		},
		{
			name:      "5th percentile flips at 6 low readings",
			highCount: 94,
			want:      Stats{Mean: 94, P5: 0, P25: 100, P75: 100, P95: 100},
		},
		{
			name:      "25th percentile holds at 25 low readings",
			highCount: 75,
			want:      Stats{Mean: 75, P5: 0, P25: 100, P75: 100, P95: 100},
		},
		{
			name:      "25th percentile flips at 26 low readings",
			highCount: 74,
			want:      Stats{Mean: 74, P5: 0, P25: 0, P75: 100, P95: 100},
		},
		{
			name:      "75th percentile holds at 74 low readings",
			highCount: 26,
			want:      Stats{Mean: 26, P5: 0, P25: 0, P75: 100, P95: 100},
		},
		{
			name:      "75th percentile flips at 76 low readings",
			highCount: 24,
			want:      Stats{Mean: 24, P5: 0, P25: 0, P75: 0, P95: 100},
		},
		{
			name:      "95th percentile holds at 94 low readings",
			highCount: 6,
			want:      Stats{Mean: 6, P5: 0, P25: 0, P75: 0, P95: 100},
		},
		{
			name:      "95th percentile flips at 95 low readings",
			highCount: 5,
			want:      Stats{Mean: 5, P5: 0, P25: 0, P75: 0, P95: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := append(testUtils.Repeat(100, tt.highCount), testUtils.Repeat(0, 100-tt.highCount)...)
			stats := Compute(testUtils.ReadingsAtHour(0, values...))
			if len(stats) != 1 {
				t.Fatalf("got %v buckets, want 1", len(stats))
			}

			got := stats[0]
			for name, pair := range map[string][2]float64{
				"Mean": {got.Mean, tt.want.Mean},
				"P5":   {got.P5, tt.want.P5},
				"P25":  {got.P25, tt.want.P25},
				"P75":  {got.P75, tt.want.P75},
				"P95":  {got.P95, tt.want.P95},
			} {
				if !testUtils.FloatEqUpTo(pair[0], pair[1], maxDiff) {
					t.Errorf("%v = %v, want %v", name, pair[0], pair[1])
				}
			}
		})
	}
}

func TestCompute_MeanOfBucket(t *testing.T) {
	stats := Compute(testUtils.ReadingsAtHour(9, 90, 110, 130))

	if len(stats) != 1 {
		t.Fatalf("got %v buckets, want 1", len(stats))
	}
	if !testUtils.FloatEqUpTo(stats[0].Mean, 110, maxDiff) {
		t.Errorf("Mean = %v, want 110", stats[0].Mean)
	}
	if stats[0].Hour != 9 {
		t.Errorf("Hour = %v, want 9", stats[0].Hour)
	}
}
