package matching

import "time"

// Seed constants for account-creation preferences. The age and height bands
// are deliberately asymmetric between genders; this mirrors observed
// matching behavior and is product policy, not an oversight.
const (
	minPreferenceAge = 18

	maleAgeBelow   = 5 // M default band: [own-5, own+2]
	maleAgeAbove   = 2
	femaleAgeBelow = 2 // F default band: [own-2, own+5]
	femaleAgeAbove = 5

	heightBandCm = 25

	defaultValuesLow     = 50
	defaultMaxDistanceKm = 50
)

// DefaultPreferences derives the preferences seeded at registration from
// the declared gender, birth date and height. Users edit them later; until
// then these drive discovery.
func DefaultPreferences(gender string, dateOfBirth time.Time, heightCm int) Preferences {
	age := AgeAt(dateOfBirth, time.Now())

	prefs := Preferences{
		ValuesRange:   Range{Low: defaultValuesLow, High: 100},
		MaxDistanceKm: defaultMaxDistanceKm,
		LikeFilter:    LikeFilterPreferences,
		// Religion and child status start as nil: "any"
	}

	if gender == GenderFemale {
		prefs.SexualPreference = GenderMale
		prefs.AgeRange = Range{
			Low:  maxInt(minPreferenceAge, age-femaleAgeBelow),
			High: age + femaleAgeAbove,
		}
		prefs.HeightRange = Range{Low: heightCm, High: heightCm + heightBandCm}
	} else {
		prefs.SexualPreference = GenderFemale
		prefs.AgeRange = Range{
			Low:  maxInt(minPreferenceAge, age-maleAgeBelow),
			High: age + maleAgeAbove,
		}
		prefs.HeightRange = Range{Low: heightCm - heightBandCm, High: heightCm}
	}

	return prefs
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
