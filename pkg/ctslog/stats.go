package ctslog

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Stats holds aggregate statistics across all records.
type Stats struct {
	Total        int
	Pass         int
	Fail         int
	NotSupported int
	Other        int

	PassRate float64 // percentage, 0 when Total is 0

	TotalDurationMicros int64
	AvgDurationMicros   float64
	P50Micros           float64
	P95Micros           float64
	MaxMicros           float64
}

// ComputeStats aggregates statistics over records. It is well defined for an
// empty slice: every count and duration is zero.
func ComputeStats(records []Record) Stats {
	s := Stats{Total: len(records)}
	durations := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		switch r.Status.Class() {
		case ClassPass:
			s.Pass++
		case ClassFail:
			s.Fail++
		case ClassNotSupported:
			s.NotSupported++
		}
		s.TotalDurationMicros += r.DurationMicros
		durations = append(durations, float64(r.DurationMicros))
	}
	s.Other = s.Total - (s.Pass + s.Fail + s.NotSupported)
	if s.Total > 0 {
		s.PassRate = 100 * float64(s.Pass) / float64(s.Total)
	}

	s.AvgDurationMicros = orZero(durations.Mean())
	s.P50Micros = orZero(durations.Median())
	s.P95Micros = orZero(durations.Percentile(95))
	s.MaxMicros = orZero(durations.Max())
	return s
}

// orZero maps the library's empty-input error to a zero value.
func orZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}

// Percent returns count as a percentage of Total, 0 when Total is 0.
func (s Stats) Percent(count int) float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(s.Total)
}

// TotalDurationMillis returns the summed duration in milliseconds.
func (s Stats) TotalDurationMillis() float64 {
	return float64(s.TotalDurationMicros) / 1_000
}

// TotalDurationSeconds returns the summed duration in seconds.
func (s Stats) TotalDurationSeconds() float64 {
	return float64(s.TotalDurationMicros) / 1_000_000
}

// FormatTotalDuration formats the total as seconds from one second up, else milliseconds.
func (s Stats) FormatTotalDuration() string {
	if secs := s.TotalDurationSeconds(); secs >= 1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.2fms", s.TotalDurationMillis())
}
