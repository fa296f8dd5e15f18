package internal

import (
	"math"
	"testing"
	"time"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{9, 1, 5}, 5},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"outlier resistant", []float64{5, 5, 5, 5, 9000}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.in); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeanAndMax(t *testing.T) {
	vs := []float64{2, 4, 6}
	if got := Mean(vs); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := Max(vs); got != 6 {
		t.Errorf("Max = %v, want 6", got)
	}
	if Mean(nil) != 0 || Max(nil) != 0 {
		t.Error("empty slices must yield 0")
	}
}

func TestPercentile(t *testing.T) {
	vs := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.5, 30},
		{0.95, 48},
		{1, 50},
	}
	for _, tt := range tests {
		if got := Percentile(vs, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if Percentile(nil, 0.5) != 0 {
		t.Error("empty slice must yield 0")
	}
	if Percentile([]float64{42}, 0.95) != 42 {
		t.Error("single element is every percentile")
	}
}

func TestParseTripTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2014-09-01 00:00:25", time.Date(2014, 9, 1, 0, 0, 25, 0, time.UTC), true},
		{"2023-06-01 08:15:00.123", time.Date(2023, 6, 1, 8, 15, 0, 123000000, time.UTC), true},
		{"9/1/2015 8:05:30", time.Date(2015, 9, 1, 8, 5, 30, 0, time.UTC), true},
		{"9/1/2015 8:05", time.Date(2015, 9, 1, 8, 5, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a time", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseTripTime(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseTripTime(%q) ok = %t, want %t", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseTripTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatTripTime_RoundTrip(t *testing.T) {
	in := "2014-09-01 00:00:25"
	parsed, ok := ParseTripTime(in)
	if !ok {
		t.Fatal("parse failed")
	}
	if out := FormatTripTime(parsed); out != in {
		t.Errorf("round trip = %q, want %q", out, in)
	}
}
