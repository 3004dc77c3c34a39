package matching

import (
	"sort"
)

// SortKey selects the primary ordering of discovery results
type SortKey string

const (
	SortByScore    SortKey = "matchScore"
	SortByDistance SortKey = "distance"
	SortByAge      SortKey = "age"
	SortByName     SortKey = "name"
)

// SortDirection selects ascending, descending, or the per-key default
type SortDirection string

const (
	DirectionDefault    SortDirection = "default"
	DirectionAscending  SortDirection = "ascending"
	DirectionDescending SortDirection = "descending"
)

// ParseSortKey maps a query-string value onto a SortKey, defaulting to
// match score
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByDistance, SortByAge, SortByName:
		return SortKey(s)
	default:
		return SortByScore
	}
}

// ParseSortDirection maps a query-string value onto a SortDirection
func ParseSortDirection(s string) SortDirection {
	switch SortDirection(s) {
	case DirectionAscending, DirectionDescending:
		return SortDirection(s)
	default:
		return DirectionDefault
	}
}

// descendingByDefault returns the resolved default for a key: best matches
// first, but closest and youngest first
func (k SortKey) descendingByDefault() bool {
	return k == SortByScore
}

// Rank orders candidates by the sort key, breaks ties deterministically by
// user id, and returns the skip/limit page. Because the tie-break is total,
// consecutive pages over a stable candidate set never duplicate or drop an
// item.
func Rank(candidates []*Candidate, key SortKey, direction SortDirection, skip, limit int) DiscoverResult {
	sorted := make([]*Candidate, len(candidates))
	copy(sorted, candidates)

	descending := direction == DirectionDescending
	if direction == DirectionDefault {
		descending = key.descendingByDefault()
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if less, equal := compare(a, b, key); !equal {
			if descending {
				return !less
			}
			return less
		}
		return a.Profile.ID < b.Profile.ID
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(sorted) {
		return DiscoverResult{Items: []*Candidate{}, HasMore: false}
	}

	end := len(sorted)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	return DiscoverResult{
		Items:   sorted[skip:end],
		HasMore: end < len(sorted),
	}
}

// compare returns (a < b, a == b) on the primary key
func compare(a, b *Candidate, key SortKey) (less, equal bool) {
	switch key {
	case SortByDistance:
		return a.DistanceKm < b.DistanceKm, a.DistanceKm == b.DistanceKm
	case SortByAge:
		return a.Age < b.Age, a.Age == b.Age
	case SortByName:
		return a.Profile.DisplayName < b.Profile.DisplayName, a.Profile.DisplayName == b.Profile.DisplayName
	default:
		return a.MatchScore < b.MatchScore, a.MatchScore == b.MatchScore
	}
}
