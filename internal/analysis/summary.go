package analysis

import (
	"github.com/SeamusWaldron/cubeterm/internal/notation"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// DefaultPauseThresholdMs is the gap between turns counted as a pause.
const DefaultPauseThresholdMs = 1500

// SolveSummary holds the pacing statistics of one solve.
type SolveSummary struct {
	DurationMs        int64            `json:"duration_ms"`
	TotalMoves        int              `json:"total_moves"`
	SimplifiedMoves   int              `json:"simplified_moves"`
	Efficiency        float64          `json:"efficiency"`
	TPS               float64          `json:"tps"`
	LongestPauseMs    int64            `json:"longest_pause_ms"`
	Pauses            []PauseInfo      `json:"pauses,omitempty"`
	AvgMoveDurationMs float64          `json:"avg_move_duration_ms"`
	Reversals         int              `json:"reversals"`
	Profile           *MovementProfile `json:"profile"`
}

// PauseInfo is a gap between two turns.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize computes the summary of a solve that took durationMs. When
// durationMs is not positive the span of the turns is used instead.
func Summarize(moves []TimedMove, durationMs, pauseThresholdMs int64) *SolveSummary {
	if durationMs <= 0 && len(moves) > 0 {
		durationMs = moves[len(moves)-1].TsMs
	}
	s := &SolveSummary{
		DurationMs:        durationMs,
		TotalMoves:        len(moves),
		SimplifiedMoves:   len(notation.Simplify(Untimed(moves))),
		TPS:               CalculateTPS(len(moves), durationMs),
		LongestPauseMs:    FindLongestPause(moves),
		Pauses:            AnalyzePauses(moves, pauseThresholdMs),
		AvgMoveDurationMs: CalculateAvgMoveDuration(moves),
		Reversals:         CountReversals(moves),
		Profile:           AnalyzeMovementProfile(moves),
	}
	if s.TotalMoves > 0 {
		s.Efficiency = float64(s.SimplifiedMoves) / float64(s.TotalMoves)
	}
	return s
}

// AnalyzePauses finds every gap of at least thresholdMs.
func AnalyzePauses(moves []TimedMove, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}
	return pauses
}

// CalculateTPS returns turns per second.
func CalculateTPS(count int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(count) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration returns the mean time between turns.
func CalculateAvgMoveDuration(moves []TimedMove) float64 {
	if len(moves) < 2 {
		return 0
	}
	total := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(total) / float64(len(moves)-1)
}

// FindLongestPause returns the largest gap between turns.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountReversals counts turns that undo the turn right before them, such
// as R followed by R'.
func CountReversals(moves []TimedMove) int {
	n := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].Move == moves[i-1].Inverse() {
			n++
		}
	}
	return n
}

// MovementProfile counts which sides and directions a solve used.
type MovementProfile struct {
	SideCounts      map[types.Side]int      `json:"side_counts"`
	DirectionCounts map[types.Direction]int `json:"direction_counts"`
	MostUsedSide    types.Side              `json:"most_used_side"`
	SidePairs       map[string]int          `json:"side_pairs"` // e.g. "RU" -> count
}

// AnalyzeMovementProfile tallies sides, directions and consecutive side
// pairs.
func AnalyzeMovementProfile(moves []TimedMove) *MovementProfile {
	p := &MovementProfile{
		SideCounts:      make(map[types.Side]int),
		DirectionCounts: make(map[types.Direction]int),
		SidePairs:       make(map[string]int),
	}
	for i, m := range moves {
		p.SideCounts[m.Side]++
		p.DirectionCounts[m.Direction]++
		if i > 0 {
			p.SidePairs[moves[i-1].Side.Letter()+m.Side.Letter()]++
		}
	}

	// Ties go to the earlier side so the result is stable.
	best := 0
	for side := types.Top; side <= types.MiddleZ; side++ {
		if c := p.SideCounts[side]; c > best {
			best = c
			p.MostUsedSide = side
		}
	}
	return p
}
