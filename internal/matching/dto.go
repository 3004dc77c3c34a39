// internal/matching/dto.go
package matching

// DTOs for API requests/responses

type LikeUserDTO struct {
	LikedID int64 `json:"liked_id" validate:"required,gt=0"`
}

// CandidateResponse flattens a scored candidate for the client
type CandidateResponse struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	Gender      string  `json:"gender"`
	Age         int     `json:"age"`
	HeightCm    int     `json:"height_cm"`
	DistanceKm  float64 `json:"distance_km"`
	MatchScore  int     `json:"match_score"`
}

type DiscoverResponse struct {
	Items   []CandidateResponse `json:"items"`
	HasMore bool                `json:"has_more"`
}

func toDiscoverResponse(result *DiscoverResult) DiscoverResponse {
	items := make([]CandidateResponse, 0, len(result.Items))
	for _, c := range result.Items {
		items = append(items, CandidateResponse{
			ID:          c.Profile.ID,
			DisplayName: c.Profile.DisplayName,
			Gender:      c.Profile.Gender,
			Age:         c.Age,
			HeightCm:    c.Profile.HeightCm,
			DistanceKm:  c.DistanceKm,
			MatchScore:  c.MatchScore,
		})
	}
	return DiscoverResponse{Items: items, HasMore: result.HasMore}
}

type CompatibilityResponse struct {
	UserID int64 `json:"user_id"`
	Score  int   `json:"score"`
}

// MatchedUserResponse is the match-list view of a profile
type MatchedUserResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
}
