package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidates() []*Candidate {
	return []*Candidate{
		{Profile: &UserProfile{ID: 1, DisplayName: "Dana"}, MatchScore: 72, DistanceKm: 3.2, Age: 31},
		{Profile: &UserProfile{ID: 2, DisplayName: "Alex"}, MatchScore: 88, DistanceKm: 12.5, Age: 27},
		{Profile: &UserProfile{ID: 3, DisplayName: "Casey"}, MatchScore: 88, DistanceKm: 1.1, Age: 35},
		{Profile: &UserProfile{ID: 4, DisplayName: "Blair"}, MatchScore: 64, DistanceKm: 7.8, Age: 27},
	}
}

func ids(items []*Candidate) []int64 {
	out := make([]int64, len(items))
	for i, c := range items {
		out[i] = c.Profile.ID
	}
	return out
}

func TestRank_DefaultDirections(t *testing.T) {
	candidates := testCandidates()

	// Score defaults to best first; equal scores fall back to id
	result := Rank(candidates, SortByScore, DirectionDefault, 0, 0)
	assert.Equal(t, []int64{2, 3, 1, 4}, ids(result.Items))

	// Distance defaults to nearest first
	result = Rank(candidates, SortByDistance, DirectionDefault, 0, 0)
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(result.Items))

	// Age defaults to youngest first; equal ages fall back to id
	result = Rank(candidates, SortByAge, DirectionDefault, 0, 0)
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(result.Items))

	// Name defaults to alphabetical
	result = Rank(candidates, SortByName, DirectionDefault, 0, 0)
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(result.Items))
}

func TestRank_ExplicitDirectionOverridesDefault(t *testing.T) {
	candidates := testCandidates()

	result := Rank(candidates, SortByScore, DirectionAscending, 0, 0)
	assert.Equal(t, []int64{4, 1, 2, 3}, ids(result.Items))

	result = Rank(candidates, SortByDistance, DirectionDescending, 0, 0)
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(result.Items))
}

func TestRank_TieBreakIsStableAcrossDirections(t *testing.T) {
	candidates := []*Candidate{
		{Profile: &UserProfile{ID: 9}, MatchScore: 80},
		{Profile: &UserProfile{ID: 4}, MatchScore: 80},
		{Profile: &UserProfile{ID: 7}, MatchScore: 80},
	}

	// All scores equal: order is by id regardless of direction
	result := Rank(candidates, SortByScore, DirectionDescending, 0, 0)
	assert.Equal(t, []int64{4, 7, 9}, ids(result.Items))

	result = Rank(candidates, SortByScore, DirectionAscending, 0, 0)
	assert.Equal(t, []int64{4, 7, 9}, ids(result.Items))
}

func TestRank_Pagination(t *testing.T) {
	candidates := testCandidates()

	full := Rank(candidates, SortByScore, DirectionDefault, 0, 0)
	require.Len(t, full.Items, 4)
	assert.False(t, full.HasMore)

	// Walking the same set page by page reproduces the full sequence
	var paged []int64
	for skip := 0; ; skip += 2 {
		page := Rank(candidates, SortByScore, DirectionDefault, skip, 2)
		paged = append(paged, ids(page.Items)...)
		if !page.HasMore {
			break
		}
	}
	assert.Equal(t, ids(full.Items), paged)
}

func TestRank_HasMore(t *testing.T) {
	candidates := testCandidates()

	page := Rank(candidates, SortByScore, DirectionDefault, 0, 3)
	assert.Len(t, page.Items, 3)
	assert.True(t, page.HasMore)

	// Final short page
	page = Rank(candidates, SortByScore, DirectionDefault, 3, 3)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)

	// Skip past the end yields an empty page, not an error
	page = Rank(candidates, SortByScore, DirectionDefault, 10, 3)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)

	// Negative skip is clamped
	page = Rank(candidates, SortByScore, DirectionDefault, -5, 2)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	candidates := testCandidates()
	Rank(candidates, SortByName, DirectionDefault, 0, 0)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(candidates))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByDistance, ParseSortKey("distance"))
	assert.Equal(t, SortByAge, ParseSortKey("age"))
	assert.Equal(t, SortByName, ParseSortKey("name"))
	assert.Equal(t, SortByScore, ParseSortKey("matchScore"))
	assert.Equal(t, SortByScore, ParseSortKey(""))
	assert.Equal(t, SortByScore, ParseSortKey("bogus"))
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, DirectionAscending, ParseSortDirection("ascending"))
	assert.Equal(t, DirectionDescending, ParseSortDirection("descending"))
	assert.Equal(t, DirectionDefault, ParseSortDirection(""))
	assert.Equal(t, DirectionDefault, ParseSortDirection("sideways"))
}
