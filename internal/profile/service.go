// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/alignd-app/alignd-backend/internal/matching"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidBirthDate   = errors.New("invalid date of birth")
	ErrUnderage           = errors.New("must be at least 18 years old")
	ErrInvalidQuizResults = errors.New("quiz results out of range")
	ErrInvalidPreferences = matching.ErrInvalidPreferences
)

// minRegistrationAge is the floor for new accounts, matching the lowest
// age any preference band is allowed to reach.
const minRegistrationAge = 18

type Service interface {
	Register(ctx context.Context, dto RegisterAccountDTO) (*Account, error)
	GetAccount(ctx context.Context, userID int64) (*Account, error)
	UpdatePreferences(ctx context.Context, userID int64, dto UpdatePreferencesDTO) (*Account, error)
	SubmitQuiz(ctx context.Context, userID int64, dto SubmitQuizDTO) error
	UpdateLocation(ctx context.Context, userID int64, dto UpdateLocationDTO) error
}

type service struct {
	repo  Repository
	cache *matching.ScoreCache
	now   func() time.Time
}

func NewService(repo Repository, cache *matching.ScoreCache) Service {
	return &service{repo: repo, cache: cache, now: time.Now}
}

func (s *service) Register(ctx context.Context, dto RegisterAccountDTO) (*Account, error) {
	dateOfBirth, err := time.Parse("2006-01-02", dto.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	if matching.AgeAt(dateOfBirth, s.now()) < minRegistrationAge {
		return nil, ErrUnderage
	}

	account := &Account{
		DisplayName: strings.TrimSpace(dto.DisplayName),
		Gender:      dto.Gender,
		DateOfBirth: dateOfBirth,
		HeightCm:    dto.HeightCm,
		Religion:    dto.Religion,
		ChildStatus: dto.ChildStatus,
		Preferences: matching.DefaultPreferences(dto.Gender, dateOfBirth, dto.HeightCm),
	}
	if dto.Lat != nil && dto.Long != nil {
		account.Location = &matching.Coordinates{Lat: *dto.Lat, Long: *dto.Long}
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("Registered account %d (%s)", account.ID, account.DisplayName)
	return account, nil
}

func (s *service) GetAccount(ctx context.Context, userID int64) (*Account, error) {
	return s.repo.GetAccount(ctx, userID)
}

func (s *service) UpdatePreferences(ctx context.Context, userID int64, dto UpdatePreferencesDTO) (*Account, error) {
	if strings.TrimSpace(dto.SexualPreference) == "" {
		return nil, ErrInvalidPreferences
	}

	prefs := matching.Preferences{
		SexualPreference: dto.SexualPreference,
		AgeRange:         matching.Range{Low: dto.AgeLow, High: dto.AgeHigh},
		HeightRange:      matching.Range{Low: dto.HeightLow, High: dto.HeightHigh},
		ValuesRange:      matching.Range{Low: dto.ValuesLow, High: dto.ValuesHigh},
		MaxDistanceKm:    dto.MaxDistanceKm,
		LikeFilter:       matching.LikeFilter(dto.LikeFilter),
	}
	if dto.Religion != 0 {
		c := matching.Category(dto.Religion)
		prefs.Religion = &c
	}
	if dto.ChildStatus != 0 {
		c := matching.Category(dto.ChildStatus)
		prefs.ChildStatus = &c
	}

	if err := s.repo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return nil, err
	}

	return s.repo.GetAccount(ctx, userID)
}

func (s *service) SubmitQuiz(ctx context.Context, userID int64, dto SubmitQuizDTO) error {
	results := matching.ValueResults{
		SelfDirection: dto.SelfDirection,
		Stimulation:   dto.Stimulation,
		Hedonism:      dto.Hedonism,
		Achievement:   dto.Achievement,
		Power:         dto.Power,
		Security:      dto.Security,
		Conformity:    dto.Conformity,
		Tradition:     dto.Tradition,
		Benevolence:   dto.Benevolence,
		Universalism:  dto.Universalism,
	}
	if !results.InRange() {
		return ErrInvalidQuizResults
	}

	if err := s.repo.SaveValueResults(ctx, userID, results); err != nil {
		return err
	}

	// Stored scores are stale once either side's answers change
	s.cache.Invalidate(ctx, userID)

	return nil
}

func (s *service) UpdateLocation(ctx context.Context, userID int64, dto UpdateLocationDTO) error {
	return s.repo.UpdateLocation(ctx, userID, dto.Lat, dto.Long)
}
