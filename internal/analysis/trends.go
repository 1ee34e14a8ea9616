package analysis

import (
	"math"
	"sort"
	"time"
)

// SolveData is the part of a stored solve that trend analysis needs.
type SolveData struct {
	SolveID    string
	StartedAt  time.Time
	DurationMs int64
	MoveCount  int
	Solved     bool
}

// SolveStats is one solve in a trend report.
type SolveStats struct {
	SolveID    string  `json:"solve_id"`
	Timestamp  string  `json:"timestamp"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

// TrendReport summarizes a window of solves.
type TrendReport struct {
	TotalSolves     int `json:"total_solves"`
	CompletedSolves int `json:"completed_solves"`

	AvgDurationMs float64 `json:"avg_duration_ms"`
	AvgMoves      float64 `json:"avg_moves"`
	AvgTPS        float64 `json:"avg_tps"`

	BestSolve  SolveStats `json:"best_solve"`
	WorstSolve SolveStats `json:"worst_solve"`

	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	// Trimmed averages of the most recent solves, keyed by window size.
	Averages map[int]float64 `json:"averages"`
}

// AverageWindows are the window sizes reported in TrendReport.Averages.
var AverageWindows = []int{5, 12, 50, 100}

// AnalyzeTrends builds a report over solves. Only solves that reached the
// solved state count towards times.
func AnalyzeTrends(solves []SolveData) *TrendReport {
	report := &TrendReport{
		TotalSolves: len(solves),
		Averages:    make(map[int]float64),
	}

	sorted := append([]SolveData(nil), solves...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	var completed []SolveData
	for _, s := range sorted {
		if s.Solved && s.DurationMs > 0 {
			completed = append(completed, s)
		}
	}
	report.CompletedSolves = len(completed)
	if len(completed) == 0 {
		return report
	}

	var totalDuration, totalMoves int64
	var totalTPS float64
	best, worst := completed[0], completed[0]
	for _, s := range completed {
		totalDuration += s.DurationMs
		totalMoves += int64(s.MoveCount)
		totalTPS += CalculateTPS(s.MoveCount, s.DurationMs)
		if s.DurationMs < best.DurationMs {
			best = s
		}
		if s.DurationMs > worst.DurationMs {
			worst = s
		}
	}
	n := float64(len(completed))
	report.AvgDurationMs = float64(totalDuration) / n
	report.AvgMoves = float64(totalMoves) / n
	report.AvgTPS = totalTPS / n
	report.BestSolve = toStats(best)
	report.WorstSolve = toStats(worst)

	report.ImprovementPct = calculateImprovement(completed)
	report.ConsistencyScore = calculateConsistency(completed)

	durations := make([]int64, len(completed))
	for i, s := range completed {
		durations[i] = s.DurationMs
	}
	for _, w := range AverageWindows {
		if avg, ok := AverageOf(durations, w); ok {
			report.Averages[w] = avg
		}
	}
	return report
}

func toStats(s SolveData) SolveStats {
	return SolveStats{
		SolveID:    s.SolveID,
		Timestamp:  s.StartedAt.Format(time.RFC3339),
		DurationMs: s.DurationMs,
		MoveCount:  s.MoveCount,
		TPS:        CalculateTPS(s.MoveCount, s.DurationMs),
	}
}

// AverageOf returns the trimmed mean of the last n durations: the best and
// worst 5% (at least one each) are dropped before averaging. It reports
// false when fewer than n durations exist or n < 3.
func AverageOf(durations []int64, n int) (float64, bool) {
	if n < 3 || len(durations) < n {
		return 0, false
	}
	recent := append([]int64(nil), durations[len(durations)-n:]...)
	sort.Slice(recent, func(i, j int) bool { return recent[i] < recent[j] })

	trim := int(math.Ceil(float64(n) * 0.05))
	kept := recent[trim : n-trim]
	var sum int64
	for _, d := range kept {
		sum += d
	}
	return float64(sum) / float64(len(kept)), true
}

// calculateImprovement compares the mean of the first quarter with the mean
// of the last quarter. Positive means faster.
func calculateImprovement(solves []SolveData) float64 {
	if len(solves) < 4 {
		return 0
	}
	quarter := len(solves) / 4

	var firstSum, lastSum int64
	for i := 0; i < quarter; i++ {
		firstSum += solves[i].DurationMs
		lastSum += solves[len(solves)-1-i].DurationMs
	}
	firstAvg := float64(firstSum) / float64(quarter)
	lastAvg := float64(lastSum) / float64(quarter)
	if firstAvg <= 0 {
		return 0
	}
	return (firstAvg - lastAvg) / firstAvg * 100
}

// calculateConsistency maps the coefficient of variation onto 0-100, higher
// being more consistent.
func calculateConsistency(solves []SolveData) float64 {
	if len(solves) < 2 {
		return 100
	}
	var sum float64
	for _, s := range solves {
		sum += float64(s.DurationMs)
	}
	mean := sum / float64(len(solves))
	if mean <= 0 {
		return 100
	}

	var squares float64
	for _, s := range solves {
		d := float64(s.DurationMs) - mean
		squares += d * d
	}
	cv := math.Sqrt(squares/float64(len(solves))) / mean

	score := 100 - cv*100
	return math.Max(0, math.Min(100, score))
}
