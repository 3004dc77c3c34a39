// internal/profile/models.go

package profile

import (
	"time"

	"github.com/alignd-app/alignd-backend/internal/matching"
)

// Account is the profile-management view of a user record
type Account struct {
	ID          int64                 `json:"id" db:"id"`
	DisplayName string                `json:"display_name" db:"display_name"`
	Gender      string                `json:"gender" db:"gender"`
	DateOfBirth time.Time             `json:"date_of_birth" db:"date_of_birth"`
	HeightCm    int                   `json:"height_cm" db:"height_cm"`
	Location    *matching.Coordinates `json:"location,omitempty"`
	Religion    int                   `json:"religion" db:"religion"`
	ChildStatus int                   `json:"child_status" db:"child_status"`
	QuizDone    bool                  `json:"quiz_done" db:"quiz_done"`
	Preferences matching.Preferences  `json:"preferences"`
	CreatedAt   time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at" db:"updated_at"`
}
