package matching

import (
	"time"
)

// Gender symbols as stored and matched against sexual preferences
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// LikeFilter controls how strictly the standard filters apply relative to
// who has liked the user
type LikeFilter int

const (
	// LikeFilterPreferences applies the full preference pipeline
	LikeFilterPreferences LikeFilter = 0
	// LikeFilterPreferencesAndLiked additionally requires the candidate to
	// have liked the requester
	LikeFilterPreferencesAndLiked LikeFilter = 1
	// LikeFilterLikedOnly shows everyone who liked the requester regardless
	// of preferences
	LikeFilterLikedOnly LikeFilter = 2
	// LikeFilterEveryone shows everyone
	LikeFilterEveryone LikeFilter = 3
)

// RequiresPreferenceGate reports whether the height and sexual-preference
// gates apply under this filter mode
func (f LikeFilter) RequiresPreferenceGate() bool {
	return f == LikeFilterPreferences || f == LikeFilterPreferencesAndLiked
}

// RequiresLikeGate reports whether the candidate must already have liked
// the requester
func (f LikeFilter) RequiresLikeGate() bool {
	return f == LikeFilterPreferencesAndLiked || f == LikeFilterLikedOnly
}

// SkipsComputedFilters reports whether the post-computation filters (age,
// distance, values range, religion, child status) are bypassed entirely
func (f LikeFilter) SkipsComputedFilters() bool {
	return f == LikeFilterLikedOnly || f == LikeFilterEveryone
}

// Category is a small coded preference dimension (religion, child status).
// A nil *Category in Preferences means "any"; the wire format keeps the
// legacy convention of 0 meaning "any".
type Category int

// Coordinates in degrees
type Coordinates struct {
	Lat  float64 `json:"lat" db:"location_lat"`
	Long float64 `json:"long" db:"location_lng"`
}

// Range is an inclusive numeric preference band
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether v lies within the band
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

// Preferences holds a user's matching constraints
type Preferences struct {
	SexualPreference string     `json:"sexual_preference" db:"sexual_preference"`
	AgeRange         Range      `json:"age_range"`
	HeightRange      Range      `json:"height_range"`
	ValuesRange      Range      `json:"values_range"` // percentage similarity bounds, 0-100
	MaxDistanceKm    float64    `json:"max_distance_km" db:"max_distance_km"`
	LikeFilter       LikeFilter `json:"like_filter" db:"like_filter"`
	Religion         *Category  `json:"religion,omitempty"`     // nil = any
	ChildStatus      *Category  `json:"child_status,omitempty"` // nil = any
}

// AcceptsGender reports whether the given gender symbol is in the
// sexual-preference set
func (p Preferences) AcceptsGender(gender string) bool {
	for _, g := range p.SexualPreference {
		if string(g) == gender {
			return true
		}
	}
	return false
}

// UserProfile is the matching view of an account
type UserProfile struct {
	ID          int64        `json:"id" db:"id"`
	DisplayName string       `json:"display_name" db:"display_name"`
	Gender      string       `json:"gender" db:"gender"`
	DateOfBirth time.Time    `json:"date_of_birth" db:"date_of_birth"`
	HeightCm    int          `json:"height_cm" db:"height_cm"`
	Location    *Coordinates `json:"location,omitempty"` // nil if never captured
	Religion    Category     `json:"religion" db:"religion"`
	ChildStatus Category     `json:"child_status" db:"child_status"`

	// ValueResults is nil until the questionnaire is completed. A user
	// without results can neither receive candidates nor appear as one.
	ValueResults *ValueResults `json:"value_results,omitempty"`

	Likes   map[int64]struct{} `json:"-"`
	Matches map[int64]struct{} `json:"-"`

	Preferences Preferences `json:"preferences"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasCompletedQuiz reports whether the values questionnaire is done
func (u *UserProfile) HasCompletedQuiz() bool {
	return u.ValueResults != nil
}

// HasLiked reports whether this user has liked the given user
func (u *UserProfile) HasLiked(userID int64) bool {
	_, ok := u.Likes[userID]
	return ok
}

// Candidate is a UserProfile annotated with the values computed during
// filtering
type Candidate struct {
	Profile    *UserProfile `json:"profile"`
	MatchScore int          `json:"match_score"`
	DistanceKm float64      `json:"distance_km"`
	Age        int          `json:"age"`
}

// MatchNotification is addressed to the party who liked first once the
// like becomes mutual
type MatchNotification struct {
	ID          string    `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`             // recipient
	OtherUserID int64     `json:"other_user_id" db:"other_user_id"` // the new match
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Seen        bool      `json:"seen" db:"seen"`
}

// LikeResult reports the outcome of a like operation
type LikeResult struct {
	LikerID      int64              `json:"liker_id"`
	LikedID      int64              `json:"liked_id"`
	Matched      bool               `json:"matched"`
	Notification *MatchNotification `json:"notification,omitempty"`
}

// DiscoverResult is a page of ranked candidates
type DiscoverResult struct {
	Items   []*Candidate `json:"items"`
	HasMore bool         `json:"has_more"`
}
