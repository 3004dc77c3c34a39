package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterToday = date(2026, time.January, 15)

func newTestFilter() *CandidateFilter {
	f := NewCandidateFilter(DifferenceScorer{})
	f.now = func() time.Time { return filterToday }
	return f
}

// testProfile builds a quiz-complete profile that passes every default gate
// against testRequester; tests then perturb single fields
func testProfile(id int64, gender string) *UserProfile {
	results := uniformResults(3)
	return &UserProfile{
		ID:           id,
		DisplayName:  "User",
		Gender:       gender,
		DateOfBirth:  date(1996, time.May, 1), // 29 at filterToday
		HeightCm:     170,
		Location:     &Coordinates{Lat: -37.81, Long: 144.96},
		ValueResults: &results,
		Likes:        map[int64]struct{}{},
		Preferences: Preferences{
			SexualPreference: oppositeGender(gender),
			AgeRange:         Range{Low: 18, High: 99},
			HeightRange:      Range{Low: 100, High: 230},
			ValuesRange:      Range{Low: 0, High: 100},
			MaxDistanceKm:    100,
		},
	}
}

func oppositeGender(g string) string {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

func testRequester() *UserProfile {
	r := testProfile(100, GenderMale)
	r.Preferences.AgeRange = Range{Low: 25, High: 35}
	r.Preferences.HeightRange = Range{Low: 160, High: 180}
	r.Preferences.ValuesRange = Range{Low: 50, High: 100}
	r.Preferences.MaxDistanceKm = 50
	return r
}

func TestFilter_RequesterWithoutQuizResults(t *testing.T) {
	requester := testRequester()
	requester.ValueResults = nil

	_, err := newTestFilter().Filter(requester, []*UserProfile{testProfile(1, GenderFemale)})
	assert.ErrorIs(t, err, ErrQuizIncomplete)
}

func TestFilter_ExcludesSelf(t *testing.T) {
	requester := testRequester()

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{requester})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFilter_ExcludesQuizIncompleteCandidates(t *testing.T) {
	requester := testRequester()
	incomplete := testProfile(1, GenderFemale)
	incomplete.ValueResults = nil

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{incomplete})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFilter_MutualGenderGate(t *testing.T) {
	requester := testRequester()

	accepted := testProfile(1, GenderFemale)

	// Requester does not want this gender
	wrongGender := testProfile(2, GenderMale)

	// Candidate does not want the requester's gender back
	notInterested := testProfile(3, GenderFemale)
	notInterested.Preferences.SexualPreference = GenderFemale

	candidates, err := newTestFilter().Filter(requester,
		[]*UserProfile{accepted, wrongGender, notInterested})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(1), candidates[0].Profile.ID)
}

func TestFilter_HeightGate(t *testing.T) {
	requester := testRequester() // accepts 160-180

	tooShort := testProfile(1, GenderFemale)
	tooShort.HeightCm = 159
	atLowerBound := testProfile(2, GenderFemale)
	atLowerBound.HeightCm = 160
	atUpperBound := testProfile(3, GenderFemale)
	atUpperBound.HeightCm = 180
	tooTall := testProfile(4, GenderFemale)
	tooTall.HeightCm = 181

	candidates, err := newTestFilter().Filter(requester,
		[]*UserProfile{tooShort, atLowerBound, atUpperBound, tooTall})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(candidates))
}

func TestFilter_LikeGate(t *testing.T) {
	requester := testRequester()
	requester.Preferences.LikeFilter = LikeFilterPreferencesAndLiked

	hasLiked := testProfile(1, GenderFemale)
	hasLiked.Likes[requester.ID] = struct{}{}
	hasNot := testProfile(2, GenderFemale)

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{hasLiked, hasNot})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(candidates))
}

func TestFilter_ComputedFilters(t *testing.T) {
	requester := testRequester()

	tooOld := testProfile(1, GenderFemale)
	tooOld.DateOfBirth = date(1980, time.January, 1) // 46

	tooFar := testProfile(2, GenderFemale)
	tooFar.Location = &Coordinates{Lat: -33.87, Long: 151.21} // Sydney, ~700km

	lowScore := testProfile(3, GenderFemale)
	dissimilar := uniformResults(0) // scores 40 against the requester's 3s
	lowScore.ValueResults = &dissimilar

	passes := testProfile(4, GenderFemale)

	candidates, err := newTestFilter().Filter(requester,
		[]*UserProfile{tooOld, tooFar, lowScore, passes})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, ids(candidates))
}

func TestFilter_CategoryNilMeansAny(t *testing.T) {
	requester := testRequester()

	muslim := testProfile(1, GenderFemale)
	muslim.Religion = 2
	atheist := testProfile(2, GenderFemale)
	atheist.Religion = 5

	// No religion preference: both pass
	candidates, err := newTestFilter().Filter(requester, []*UserProfile{muslim, atheist})
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	// With a preference only the matching category survives
	wanted := Category(2)
	requester.Preferences.Religion = &wanted
	candidates, err = newTestFilter().Filter(requester, []*UserProfile{muslim, atheist})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(candidates))
}

func TestFilter_LikedOnlyBypassesPreferences(t *testing.T) {
	requester := testRequester()
	requester.Preferences.LikeFilter = LikeFilterLikedOnly

	// Fails height, gender, age and distance, but liked the requester
	admirer := testProfile(1, GenderMale)
	admirer.HeightCm = 200
	admirer.DateOfBirth = date(1970, time.January, 1)
	admirer.Location = nil
	admirer.Likes[requester.ID] = struct{}{}

	// Passes everything but never liked the requester
	stranger := testProfile(2, GenderFemale)

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{admirer, stranger})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(candidates))
}

func TestFilter_EveryoneStillRequiresQuiz(t *testing.T) {
	requester := testRequester()
	requester.Preferences.LikeFilter = LikeFilterEveryone

	anyone := testProfile(1, GenderMale)
	anyone.HeightCm = 210
	anyone.DateOfBirth = date(1960, time.January, 1)

	noQuiz := testProfile(2, GenderFemale)
	noQuiz.ValueResults = nil

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{anyone, noQuiz})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(candidates))
}

func TestFilter_AnnotatesCandidates(t *testing.T) {
	requester := testRequester()
	requester.Location = &Coordinates{Lat: -37.818767, Long: 144.952742}

	candidate := testProfile(1, GenderFemale)
	candidate.Location = &Coordinates{Lat: -37.811782, Long: 144.973167}
	candidate.DateOfBirth = date(1998, time.June, 30)
	similar := uniformResults(2.5)
	candidate.ValueResults = &similar // 90 against the requester's 3s

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{candidate})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	got := candidates[0]
	assert.Equal(t, 90, got.MatchScore)
	assert.InDelta(t, 1.96, got.DistanceKm, 0.05)
	assert.Equal(t, 27, got.Age)
}

func TestFilter_FallbackDistanceSubjectToMaxDistance(t *testing.T) {
	requester := testRequester()
	requester.Preferences.MaxDistanceKm = 5

	// No location on file: flat fallback distance exceeds a 5km cap
	unlocated := testProfile(1, GenderFemale)
	unlocated.Location = nil

	candidates, err := newTestFilter().Filter(requester, []*UserProfile{unlocated})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
