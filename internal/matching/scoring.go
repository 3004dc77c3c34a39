package matching

import (
	"math"
	"sort"
)

// The ten PVQ value dimensions. Each holds the user's average answer for
// that value, on a 0-5 scale.
type ValueResults struct {
	SelfDirection float64 `json:"selfDirection" db:"self_direction"`
	Stimulation   float64 `json:"stimulation" db:"stimulation"`
	Hedonism      float64 `json:"hedonism" db:"hedonism"`
	Achievement   float64 `json:"achievement" db:"achievement"`
	Power         float64 `json:"power" db:"power"`
	Security      float64 `json:"security" db:"security"`
	Conformity    float64 `json:"conformity" db:"conformity"`
	Tradition     float64 `json:"tradition" db:"tradition"`
	Benevolence   float64 `json:"benevolence" db:"benevolence"`
	Universalism  float64 `json:"universalism" db:"universalism"`
}

// valueNames lists the dimensions in a fixed order so that iteration, and
// rank tie-breaking, is deterministic. Alphabetical.
var valueNames = []string{
	"achievement",
	"benevolence",
	"conformity",
	"hedonism",
	"power",
	"security",
	"selfDirection",
	"stimulation",
	"tradition",
	"universalism",
}

// byName returns the score for a named dimension
func (v ValueResults) byName(name string) float64 {
	switch name {
	case "selfDirection":
		return v.SelfDirection
	case "stimulation":
		return v.Stimulation
	case "hedonism":
		return v.Hedonism
	case "achievement":
		return v.Achievement
	case "power":
		return v.Power
	case "security":
		return v.Security
	case "conformity":
		return v.Conformity
	case "tradition":
		return v.Tradition
	case "benevolence":
		return v.Benevolence
	case "universalism":
		return v.Universalism
	}
	return 0
}

// InRange reports whether every dimension sits on the 0-5 answer scale.
func (v ValueResults) InRange() bool {
	for _, name := range valueNames {
		score := v.byName(name)
		if score < 0 || score > 5 {
			return false
		}
	}
	return true
}

// ScoringStrategy computes a symmetric values-alignment score in [0,100]
// between two completed questionnaires.
//
// Two strategies exist. DifferenceScorer is the one wired into production
// filtering; RankScorer is the legacy alternative kept selectable behind
// the MATCH_SCORING_STRATEGY knob so product can still A/B it.
type ScoringStrategy interface {
	Score(a, b ValueResults) int
	Name() string
}

// NewScoringStrategy resolves a strategy by its config name. Unknown names
// fall back to the difference scorer.
func NewScoringStrategy(name string) ScoringStrategy {
	if name == "rank" {
		return RankScorer{}
	}
	return DifferenceScorer{}
}

// DifferenceScorer starts at 100 and deducts 10 * |a-b| / 5 per dimension.
// Each dimension is worth at most 10 points, so ten dimensions span the
// full 0-100 range. Symmetric by construction.
type DifferenceScorer struct{}

func (DifferenceScorer) Name() string { return "difference" }

func (DifferenceScorer) Score(a, b ValueResults) int {
	deduction := 0.0
	for _, name := range valueNames {
		deduction += 10 * math.Abs(a.byName(name)-b.byName(name)) / 5
	}
	return int(math.Ceil(100 - deduction))
}

// RankScorer compares how the two users order their values rather than the
// raw magnitudes: each user's ten dimensions are ranked by score (ties
// broken alphabetically by dimension name), and each dimension is penalized
// twice the absolute difference in rank position.
type RankScorer struct{}

func (RankScorer) Name() string { return "rank" }

func (RankScorer) Score(a, b ValueResults) int {
	ranksA := rankPositions(a)
	ranksB := rankPositions(b)

	penalty := 0
	for _, name := range valueNames {
		diff := ranksA[name] - ranksB[name]
		if diff < 0 {
			diff = -diff
		}
		penalty += 2 * diff
	}
	return int(math.Ceil(float64(100 - penalty)))
}

// rankPositions maps each dimension name to its position when the user's
// values are sorted by magnitude, highest first
func rankPositions(v ValueResults) map[string]int {
	names := make([]string, len(valueNames))
	copy(names, valueNames)

	sort.SliceStable(names, func(i, j int) bool {
		si, sj := v.byName(names[i]), v.byName(names[j])
		if si != sj {
			return si > sj
		}
		return names[i] < names[j]
	})

	positions := make(map[string]int, len(names))
	for pos, name := range names {
		positions[name] = pos
	}
	return positions
}
