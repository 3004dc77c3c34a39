package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// uniformResults builds a ValueResults with every dimension at v
func uniformResults(v float64) ValueResults {
	return ValueResults{
		SelfDirection: v,
		Stimulation:   v,
		Hedonism:      v,
		Achievement:   v,
		Power:         v,
		Security:      v,
		Conformity:    v,
		Tradition:     v,
		Benevolence:   v,
		Universalism:  v,
	}
}

func TestDifferenceScorer_IdenticalProfiles(t *testing.T) {
	scorer := DifferenceScorer{}

	a := ValueResults{
		SelfDirection: 4.2, Stimulation: 1.8, Hedonism: 3.0,
		Achievement: 2.5, Power: 0.5, Security: 4.8,
		Conformity: 3.3, Tradition: 1.0, Benevolence: 5.0,
		Universalism: 2.0,
	}

	assert.Equal(t, 100, scorer.Score(a, a))
}

func TestDifferenceScorer_MaximalDifference(t *testing.T) {
	scorer := DifferenceScorer{}
	assert.Equal(t, 0, scorer.Score(uniformResults(5), uniformResults(0)))
}

func TestDifferenceScorer_HalfDifference(t *testing.T) {
	scorer := DifferenceScorer{}
	// 2.5 apart on all ten dimensions deducts 5 points each
	assert.Equal(t, 50, scorer.Score(uniformResults(5), uniformResults(2.5)))
}

func TestDifferenceScorer_SingleDimension(t *testing.T) {
	scorer := DifferenceScorer{}

	a := uniformResults(3)
	b := uniformResults(3)
	b.Hedonism = 4 // one full point apart deducts 2

	assert.Equal(t, 98, scorer.Score(a, b))
}

func TestDifferenceScorer_RoundsUp(t *testing.T) {
	scorer := DifferenceScorer{}

	a := uniformResults(3)
	b := uniformResults(3)
	b.Power = 3.25 // deducts 0.5, score 99.5 rounds up

	assert.Equal(t, 100, scorer.Score(a, b))
}

func TestDifferenceScorer_Symmetric(t *testing.T) {
	scorer := DifferenceScorer{}

	a := ValueResults{
		SelfDirection: 1.2, Stimulation: 4.4, Hedonism: 0.1,
		Achievement: 3.9, Power: 2.2, Security: 1.1,
		Conformity: 4.0, Tradition: 0.8, Benevolence: 3.5,
		Universalism: 2.7,
	}
	b := uniformResults(2.5)

	assert.Equal(t, scorer.Score(a, b), scorer.Score(b, a))
}

// rampResults assigns strictly decreasing magnitudes down the alphabetical
// dimension order, so the rank ordering is unambiguous
func rampResults(descending bool) ValueResults {
	var v ValueResults
	for i, name := range valueNames {
		score := float64(10-i) / 2 // 5.0, 4.5, ... 0.5
		if !descending {
			score = float64(i+1) / 2 // 0.5, 1.0, ... 5.0
		}
		switch name {
		case "achievement":
			v.Achievement = score
		case "benevolence":
			v.Benevolence = score
		case "conformity":
			v.Conformity = score
		case "hedonism":
			v.Hedonism = score
		case "power":
			v.Power = score
		case "security":
			v.Security = score
		case "selfDirection":
			v.SelfDirection = score
		case "stimulation":
			v.Stimulation = score
		case "tradition":
			v.Tradition = score
		case "universalism":
			v.Universalism = score
		}
	}
	return v
}

func TestRankScorer_IdenticalOrdering(t *testing.T) {
	scorer := RankScorer{}
	v := rampResults(true)
	assert.Equal(t, 100, scorer.Score(v, v))
}

func TestRankScorer_ReversedOrdering(t *testing.T) {
	scorer := RankScorer{}
	// Fully reversed priorities: rank displacements sum to 50, at 2 points
	// each the score bottoms out
	assert.Equal(t, 0, scorer.Score(rampResults(true), rampResults(false)))
}

func TestRankScorer_MagnitudeInsensitive(t *testing.T) {
	scorer := RankScorer{}

	a := rampResults(true)
	b := rampResults(true)
	// Scale b down; the ordering, and thus the score, is unchanged
	b.Achievement /= 2
	b.Benevolence /= 2
	b.Conformity /= 2
	b.Hedonism /= 2
	b.Power /= 2
	b.Security /= 2
	b.SelfDirection /= 2
	b.Stimulation /= 2
	b.Tradition /= 2
	b.Universalism /= 2

	assert.Equal(t, 100, scorer.Score(a, b))
}

func TestNewScoringStrategy(t *testing.T) {
	assert.Equal(t, "rank", NewScoringStrategy("rank").Name())
	assert.Equal(t, "difference", NewScoringStrategy("difference").Name())
	assert.Equal(t, "difference", NewScoringStrategy("").Name())
}

func TestValueResults_InRange(t *testing.T) {
	assert.True(t, uniformResults(0).InRange())
	assert.True(t, uniformResults(5).InRange())

	tooHigh := uniformResults(3)
	tooHigh.Tradition = 5.1
	assert.False(t, tooHigh.InRange())

	negative := uniformResults(3)
	negative.Security = -0.1
	assert.False(t, negative.InRange())
}
