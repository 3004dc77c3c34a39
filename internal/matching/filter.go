package matching

import (
	"time"
)

// CandidateFilter reduces a user population to the candidates eligible for
// a requester, annotating each survivor with its computed match score,
// distance and age.
type CandidateFilter struct {
	scorer ScoringStrategy
	now    func() time.Time
}

func NewCandidateFilter(scorer ScoringStrategy) *CandidateFilter {
	return &CandidateFilter{
		scorer: scorer,
		now:    time.Now,
	}
}

// Filter applies the gate pipeline in order:
//
//  1. eligibility: quiz completed, not the requester themselves
//  2. preference gate (likeFilter 0,1): height band and mutual
//     sexual-preference compatibility
//  3. like gate (likeFilter 1,2): candidate already liked the requester
//  4. annotation: match score, distance, age
//  5. computed filters (skipped for likeFilter 2,3): age band, max
//     distance, values range, religion, child status
//
// The repository pre-narrows by the cheap indexable predicates; the gates
// are still applied here so the pipeline is correct over any population.
func (f *CandidateFilter) Filter(requester *UserProfile, population []*UserProfile) ([]*Candidate, error) {
	if !requester.HasCompletedQuiz() {
		// Callers detect this upstream; never score without a baseline
		return nil, ErrQuizIncomplete
	}

	mode := requester.Preferences.LikeFilter
	today := f.now()

	candidates := make([]*Candidate, 0, len(population))
	for _, candidate := range population {
		// Stage 1: eligibility gate, always applied
		if candidate.ID == requester.ID || !candidate.HasCompletedQuiz() {
			continue
		}

		// Stage 2: preference-match gate
		if mode.RequiresPreferenceGate() {
			if !requester.Preferences.HeightRange.Contains(candidate.HeightCm) {
				continue
			}
			// Mutual: each party's gender must be acceptable to the other
			if !requester.Preferences.AcceptsGender(candidate.Gender) ||
				!candidate.Preferences.AcceptsGender(requester.Gender) {
				continue
			}
		}

		// Stage 3: like gate
		if mode.RequiresLikeGate() && !candidate.HasLiked(requester.ID) {
			continue
		}

		// Stage 4: computed annotations
		annotated := &Candidate{
			Profile:    candidate,
			MatchScore: f.scorer.Score(*requester.ValueResults, *candidate.ValueResults),
			DistanceKm: DistanceBetween(requester, candidate),
			Age:        AgeAt(candidate.DateOfBirth, today),
		}

		// Stage 5: post-computation filters
		if !mode.SkipsComputedFilters() {
			prefs := requester.Preferences
			if !prefs.AgeRange.Contains(annotated.Age) {
				continue
			}
			if annotated.DistanceKm > prefs.MaxDistanceKm {
				continue
			}
			if !prefs.ValuesRange.Contains(annotated.MatchScore) {
				continue
			}
			if prefs.Religion != nil && candidate.Religion != *prefs.Religion {
				continue
			}
			if prefs.ChildStatus != nil && candidate.ChildStatus != *prefs.ChildStatus {
				continue
			}
		}

		candidates = append(candidates, annotated)
	}

	return candidates, nil
}
