// Package timeseries shapes weight and injection history into chart series
// and summary statistics.
package timeseries

import (
	"math"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type WeightPoint struct {
	Date       string    `json:"date"`
	RecordedAt time.Time `json:"recordedAt"`
	WeightKg   float64   `json:"weightKg"`
}

type InjectionPoint struct {
	Date       string      `json:"date"`
	InjectedAt time.Time   `json:"injectedAt"`
	DoseMg     float64     `json:"doseMg"`
	Site       domain.Site `json:"site"`
}

type WeeklyAverage struct {
	WeekStart string  `json:"weekStart"`
	AverageKg float64 `json:"averageKg"`
	Count     int     `json:"count"`
}

type DosePoint struct {
	Date   string  `json:"date"`
	DoseMg float64 `json:"doseMg"`
}

// WindowStats is computed over one filtered window. Every field is nil for an
// empty window.
type WindowStats struct {
	Start         *float64 `json:"start"`
	Current       *float64 `json:"current"`
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	Avg           *float64 `json:"avg"`
	Change        *float64 `json:"change"`
	PercentChange *float64 `json:"percentChange"`
}

func sortedWeights(entries []domain.WeightEntry) []domain.WeightEntry {
	sorted := make([]domain.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})
	return sorted
}

func sortedInjections(injections []domain.InjectionRecord) []domain.InjectionRecord {
	sorted := make([]domain.InjectionRecord, len(injections))
	copy(sorted, injections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InjectedAt.Before(sorted[j].InjectedAt)
	})
	return sorted
}

// WeightSeries returns chronological chart points with days in loc.
func WeightSeries(entries []domain.WeightEntry, loc *time.Location) []WeightPoint {
	points := make([]WeightPoint, 0, len(entries))
	for _, e := range sortedWeights(entries) {
		at := e.RecordedAt.In(loc)
		points = append(points, WeightPoint{
			Date:       calendar.FormatDay(at),
			RecordedAt: at,
			WeightKg:   e.WeightKg,
		})
	}
	return points
}

func InjectionSeries(injections []domain.InjectionRecord, loc *time.Location) []InjectionPoint {
	points := make([]InjectionPoint, 0, len(injections))
	for _, inj := range sortedInjections(injections) {
		at := inj.InjectedAt.In(loc)
		points = append(points, InjectionPoint{
			Date:       calendar.FormatDay(at),
			InjectedAt: at,
			DoseMg:     inj.Dose.Float64(),
			Site:       inj.Site,
		})
	}
	return points
}

// WeeklyAverages buckets entries by the start of their local week. Weeks
// without entries are omitted. Buckets are returned oldest first.
func WeeklyAverages(entries []domain.WeightEntry, weekStartsOn time.Weekday, loc *time.Location) []WeeklyAverage {
	type bucket struct {
		start time.Time
		sum   float64
		count int
	}

	buckets := make(map[string]*bucket)
	for _, e := range entries {
		start := calendar.StartOfWeek(e.RecordedAt.In(loc), weekStartsOn)
		key := calendar.FormatDay(start)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: start}
			buckets[key] = b
		}
		b.sum += e.WeightKg
		b.count++
	}

	averages := make([]WeeklyAverage, 0, len(buckets))
	for key, b := range buckets {
		averages = append(averages, WeeklyAverage{
			WeekStart: key,
			AverageKg: round2(b.sum / float64(b.count)),
			Count:     b.count,
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].WeekStart < averages[j].WeekStart
	})
	return averages
}

// CompressDoseHistory keeps only the injections whose dose differs from the
// previously kept one, in chronological order.
func CompressDoseHistory(injections []domain.InjectionRecord, loc *time.Location) []DosePoint {
	points := make([]DosePoint, 0)
	for _, inj := range sortedInjections(injections) {
		dose := inj.Dose.Float64()
		if n := len(points); n > 0 && points[n-1].DoseMg == dose {
			continue
		}
		points = append(points, DosePoint{
			Date:   calendar.FormatDay(inj.InjectedAt.In(loc)),
			DoseMg: dose,
		})
	}
	return points
}

// ComputeWindowStats rounds each result to two decimals; intermediate values
// keep full precision.
func ComputeWindowStats(entries []domain.WeightEntry) WindowStats {
	if len(entries) == 0 {
		return WindowStats{}
	}

	sorted := sortedWeights(entries)
	start := sorted[0].WeightKg
	current := sorted[len(sorted)-1].WeightKg
	lo, hi, sum := start, start, 0.0
	for _, e := range sorted {
		lo = math.Min(lo, e.WeightKg)
		hi = math.Max(hi, e.WeightKg)
		sum += e.WeightKg
	}
	avg := sum / float64(len(sorted))
	change := current - start

	stats := WindowStats{
		Start:   ptr(round2(start)),
		Current: ptr(round2(current)),
		Min:     ptr(round2(lo)),
		Max:     ptr(round2(hi)),
		Avg:     ptr(round2(avg)),
		Change:  ptr(round2(change)),
	}
	if start != 0 {
		stats.PercentChange = ptr(round2(change / start * 100))
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
