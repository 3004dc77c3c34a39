package matching

import "time"

// AgeAt derives an age in whole years. A person turns N on the exact
// anniversary of their birth date, not the day after.
func AgeAt(birthDate, today time.Time) int {
	years := today.Year() - birthDate.Year()

	// Decrement if the anniversary has not yet occurred this year
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		years--
	}

	return years
}

// Age returns the user's current age in whole years
func (u *UserProfile) Age() int {
	return AgeAt(u.DateOfBirth, time.Now())
}
