package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignd-app/alignd-backend/internal/matching"
)

type fakeRepository struct {
	accounts map[int64]*Account
	results  map[int64]matching.ValueResults
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		accounts: make(map[int64]*Account),
		results:  make(map[int64]matching.ValueResults),
		nextID:   1,
	}
}

func (r *fakeRepository) CreateAccount(ctx context.Context, account *Account) error {
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeRepository) GetAccount(ctx context.Context, userID int64) (*Account, error) {
	account, ok := r.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeRepository) UpdatePreferences(ctx context.Context, userID int64, prefs matching.Preferences) error {
	account, ok := r.accounts[userID]
	if !ok {
		return ErrAccountNotFound
	}
	account.Preferences = prefs
	return nil
}

func (r *fakeRepository) SaveValueResults(ctx context.Context, userID int64, results matching.ValueResults) error {
	r.results[userID] = results
	if account, ok := r.accounts[userID]; ok {
		account.QuizDone = true
	}
	return nil
}

func (r *fakeRepository) UpdateLocation(ctx context.Context, userID int64, lat, long float64) error {
	account, ok := r.accounts[userID]
	if !ok {
		return ErrAccountNotFound
	}
	account.Location = &matching.Coordinates{Lat: lat, Long: long}
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil)
}

func registerDTO() RegisterAccountDTO {
	return RegisterAccountDTO{
		DisplayName: "Jordan",
		Gender:      matching.GenderMale,
		DateOfBirth: "1994-03-20",
		HeightCm:    178,
	}
}

func TestRegister_SeedsDefaultPreferences(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)
	require.NotZero(t, account.ID)

	prefs := account.Preferences
	assert.Equal(t, matching.GenderFemale, prefs.SexualPreference)
	assert.Equal(t, matching.Range{Low: 153, High: 178}, prefs.HeightRange)
	assert.Equal(t, matching.Range{Low: 50, High: 100}, prefs.ValuesRange)
	assert.Equal(t, 50.0, prefs.MaxDistanceKm)
	assert.Equal(t, matching.LikeFilterPreferences, prefs.LikeFilter)

	age := matching.AgeAt(account.DateOfBirth, time.Now())
	assert.Equal(t, age-5, prefs.AgeRange.Low)
	assert.Equal(t, age+2, prefs.AgeRange.High)
}

func TestRegister_RejectsBadBirthDate(t *testing.T) {
	svc := newTestService(newFakeRepository())

	dto := registerDTO()
	dto.DateOfBirth = "20-03-1994"
	_, err := svc.Register(context.Background(), dto)
	assert.ErrorIs(t, err, ErrInvalidBirthDate)
}

func TestRegister_RejectsUnderage(t *testing.T) {
	svc := newTestService(newFakeRepository())

	dto := registerDTO()
	dto.DateOfBirth = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	_, err := svc.Register(context.Background(), dto)
	assert.ErrorIs(t, err, ErrUnderage)
}

func TestUpdatePreferences_EmptySexualPreference(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)

	dto := UpdatePreferencesDTO{
		SexualPreference: "  ",
		AgeLow:           20, AgeHigh: 30,
		HeightLow: 150, HeightHigh: 190,
		ValuesLow: 0, ValuesHigh: 100,
		MaxDistanceKm: 25,
	}
	_, err = svc.UpdatePreferences(context.Background(), account.ID, dto)
	assert.ErrorIs(t, err, ErrInvalidPreferences)
}

func TestUpdatePreferences_ZeroCategoryMeansAny(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)

	dto := UpdatePreferencesDTO{
		SexualPreference: matching.GenderFemale,
		AgeLow:           20, AgeHigh: 30,
		HeightLow: 150, HeightHigh: 190,
		ValuesLow: 40, ValuesHigh: 100,
		MaxDistanceKm: 25,
		LikeFilter:    1,
		Religion:      3,
		ChildStatus:   0,
	}
	updated, err := svc.UpdatePreferences(context.Background(), account.ID, dto)
	require.NoError(t, err)

	require.NotNil(t, updated.Preferences.Religion)
	assert.Equal(t, matching.Category(3), *updated.Preferences.Religion)
	assert.Nil(t, updated.Preferences.ChildStatus)
	assert.Equal(t, matching.LikeFilterPreferencesAndLiked, updated.Preferences.LikeFilter)
}

func TestSubmitQuiz(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)

	dto := SubmitQuizDTO{
		SelfDirection: 4.2, Stimulation: 1.8, Hedonism: 3.0,
		Achievement: 2.5, Power: 0.5, Security: 4.8,
		Conformity: 3.3, Tradition: 1.0, Benevolence: 5.0,
		Universalism: 2.0,
	}
	require.NoError(t, svc.SubmitQuiz(context.Background(), account.ID, dto))

	saved := repo.results[account.ID]
	assert.Equal(t, 4.2, saved.SelfDirection)
	assert.Equal(t, 5.0, saved.Benevolence)
}

func TestSubmitQuiz_OutOfRange(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)

	dto := SubmitQuizDTO{SelfDirection: 5.5}
	err = svc.SubmitQuiz(context.Background(), account.ID, dto)
	assert.ErrorIs(t, err, ErrInvalidQuizResults)
	assert.Empty(t, repo.results)
}

func TestUpdateLocation(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), registerDTO())
	require.NoError(t, err)

	dto := UpdateLocationDTO{Lat: -37.81, Long: 144.96}
	require.NoError(t, svc.UpdateLocation(context.Background(), account.ID, dto))

	stored, err := svc.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Location)
	assert.Equal(t, -37.81, stored.Location.Lat)
}
