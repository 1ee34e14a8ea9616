package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/cubeterm/internal/notation"
)

// maxOccurrences caps how many positions are kept per n-gram.
const maxOccurrences = 10

// NGram is a turn sequence that occurs more than once.
type NGram struct {
	N           int               `json:"n"`
	Sequence    string            `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence is where an n-gram was found.
type NGramOccurrence struct {
	SolveID    string `json:"solve_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport holds the mined n-grams keyed by length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// RollingHash is a Rabin-Karp hash over a fixed window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
		pow:    1,
	}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll appends token, dropping the oldest one once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 { return rh.hash }

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 { return slices.Clone(rh.window) }

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool { return len(rh.window) == rh.n }

// Segment is the turns of one solve.
type Segment struct {
	SolveID string
	Moves   []TimedMove
}

type ngramEntry struct {
	tokens      []uint8
	count       int
	first       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the topK most frequent sequences for each length in
// [minN, maxN]. Sequences never span two segments. Only sequences seen at
// least twice are reported.
func MineNGrams(segments []Segment, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}
	if minN < 1 {
		minN = 1
	}
	for n := minN; n <= maxN; n++ {
		if grams := mineN(segments, n, topK); len(grams) > 0 {
			report.TopNGrams[n] = grams
		}
	}
	return report
}

// collisions keeps every distinct window that shares a hash.
type collisions []*ngramEntry

func mineN(segments []Segment, n, topK int) []NGram {
	counts := make(map[uint64]collisions)
	order := 0

	for _, seg := range segments {
		rh := NewRollingHash(n)
		for i, m := range seg.Moves {
			rh.Roll(Token(m.Move))
			if !rh.Ready() {
				continue
			}
			start := i - n + 1
			occ := NGramOccurrence{
				SolveID:    seg.SolveID,
				StartIndex: start,
				TsMs:       seg.Moves[start].TsMs,
			}

			hash := rh.Hash()
			var entry *ngramEntry
			for _, e := range counts[hash] {
				if slices.Equal(e.tokens, rh.window) {
					entry = e
					break
				}
			}
			if entry == nil {
				entry = &ngramEntry{tokens: rh.Window(), first: order}
				order++
				counts[hash] = append(counts[hash], entry)
			}
			entry.count++
			if len(entry.occurrences) < maxOccurrences {
				entry.occurrences = append(entry.occurrences, occ)
			}
		}
	}

	var entries []*ngramEntry
	for _, bucket := range counts {
		for _, e := range bucket {
			if e.count >= 2 {
				entries = append(entries, e)
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})
	if topK > 0 && len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		moves := make([]TimedMove, len(e.tokens))
		for j, t := range e.tokens {
			moves[j] = TimedMove{Move: FromToken(t)}
		}
		result[i] = NGram{
			N:           n,
			Sequence:    notation.FormatSequence(Untimed(moves)),
			Tokens:      e.tokens,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}
