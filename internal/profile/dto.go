// internal/profile/dto.go
package profile

// DTOs for API requests/responses

type RegisterAccountDTO struct {
	DisplayName string   `json:"display_name" validate:"required,min=2,max=50"`
	Gender      string   `json:"gender" validate:"required,oneof=M F"`
	DateOfBirth string   `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	HeightCm    int      `json:"height_cm" validate:"required,min=120,max=230"`
	Lat         *float64 `json:"lat,omitempty"`
	Long        *float64 `json:"long,omitempty"`
	Religion    int      `json:"religion" validate:"min=0"`
	ChildStatus int      `json:"child_status" validate:"min=0"`
}

type UpdatePreferencesDTO struct {
	SexualPreference string  `json:"sexual_preference" validate:"required,min=1,max=2"`
	AgeLow           int     `json:"age_low" validate:"required,min=18"`
	AgeHigh          int     `json:"age_high" validate:"required,gtefield=AgeLow"`
	HeightLow        int     `json:"height_low" validate:"required,min=100"`
	HeightHigh       int     `json:"height_high" validate:"required,gtefield=HeightLow"`
	ValuesLow        int     `json:"values_low" validate:"min=0,max=100"`
	ValuesHigh       int     `json:"values_high" validate:"min=0,max=100,gtefield=ValuesLow"`
	MaxDistanceKm    float64 `json:"max_distance_km" validate:"required,gt=0"`
	LikeFilter       int     `json:"like_filter" validate:"min=0,max=3"`
	// 0 keeps the legacy meaning of "any"
	Religion    int `json:"religion" validate:"min=0"`
	ChildStatus int `json:"child_status" validate:"min=0"`
}

// SubmitQuizDTO carries the ten per-value averages, each on the 0-5 scale
type SubmitQuizDTO struct {
	SelfDirection float64 `json:"selfDirection" validate:"min=0,max=5"`
	Stimulation   float64 `json:"stimulation" validate:"min=0,max=5"`
	Hedonism      float64 `json:"hedonism" validate:"min=0,max=5"`
	Achievement   float64 `json:"achievement" validate:"min=0,max=5"`
	Power         float64 `json:"power" validate:"min=0,max=5"`
	Security      float64 `json:"security" validate:"min=0,max=5"`
	Conformity    float64 `json:"conformity" validate:"min=0,max=5"`
	Tradition     float64 `json:"tradition" validate:"min=0,max=5"`
	Benevolence   float64 `json:"benevolence" validate:"min=0,max=5"`
	Universalism  float64 `json:"universalism" validate:"min=0,max=5"`
}

type UpdateLocationDTO struct {
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Long float64 `json:"long" validate:"min=-180,max=180"`
}
