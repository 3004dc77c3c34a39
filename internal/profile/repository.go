// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/alignd-app/alignd-backend/internal/matching"
)

type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, userID int64) (*Account, error)
	UpdatePreferences(ctx context.Context, userID int64, prefs matching.Preferences) error
	SaveValueResults(ctx context.Context, userID int64, results matching.ValueResults) error
	UpdateLocation(ctx context.Context, userID int64, lat, long float64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// categoryToWire maps a nullable category back onto the legacy 0 = "any"
func categoryToWire(c *matching.Category) int {
	if c == nil {
		return 0
	}
	return int(*c)
}

func (r *postgresRepository) CreateAccount(ctx context.Context, account *Account) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lat, lng *float64
	if account.Location != nil {
		lat, lng = &account.Location.Lat, &account.Location.Long
	}

	err = tx.QueryRowxContext(ctx, `
        INSERT INTO users (
            display_name, gender, date_of_birth, height_cm,
            location_lat, location_lng, religion, child_status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `,
		account.DisplayName, account.Gender, account.DateOfBirth, account.HeightCm,
		lat, lng, account.Religion, account.ChildStatus,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return err
	}

	prefs := account.Preferences
	_, err = tx.ExecContext(ctx, `
        INSERT INTO preferences (
            user_id, sexual_preference, age_low, age_high,
            height_low, height_high, values_low, values_high,
            max_distance_km, like_filter, religion, child_status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `,
		account.ID, prefs.SexualPreference,
		prefs.AgeRange.Low, prefs.AgeRange.High,
		prefs.HeightRange.Low, prefs.HeightRange.High,
		prefs.ValuesRange.Low, prefs.ValuesRange.High,
		prefs.MaxDistanceKm, int(prefs.LikeFilter),
		categoryToWire(prefs.Religion), categoryToWire(prefs.ChildStatus),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) GetAccount(ctx context.Context, userID int64) (*Account, error) {
	row := struct {
		ID          int64     `db:"id"`
		DisplayName string    `db:"display_name"`
		Gender      string    `db:"gender"`
		DateOfBirth sql.NullTime `db:"date_of_birth"`
		HeightCm    int       `db:"height_cm"`
		LocationLat *float64  `db:"location_lat"`
		LocationLng *float64  `db:"location_lng"`
		Religion    int       `db:"religion"`
		ChildStatus int       `db:"child_status"`
		QuizDone    bool      `db:"quiz_done"`
		CreatedAt   sql.NullTime `db:"created_at"`
		UpdatedAt   sql.NullTime `db:"updated_at"`

		SexualPreference string  `db:"sexual_preference"`
		AgeLow           int     `db:"age_low"`
		AgeHigh          int     `db:"age_high"`
		HeightLow        int     `db:"height_low"`
		HeightHigh       int     `db:"height_high"`
		ValuesLow        int     `db:"values_low"`
		ValuesHigh       int     `db:"values_high"`
		MaxDistanceKm    float64 `db:"max_distance_km"`
		LikeFilter       int     `db:"like_filter"`
		PrefReligion     int     `db:"pref_religion"`
		PrefChildStatus  int     `db:"pref_child_status"`
	}{}

	err := r.db.GetContext(ctx, &row, `
        SELECT u.id, u.display_name, u.gender, u.date_of_birth, u.height_cm,
               u.location_lat, u.location_lng, u.religion, u.child_status,
               (v.user_id IS NOT NULL) AS quiz_done,
               u.created_at, u.updated_at,
               p.sexual_preference, p.age_low, p.age_high,
               p.height_low, p.height_high, p.values_low, p.values_high,
               p.max_distance_km, p.like_filter,
               p.religion AS pref_religion, p.child_status AS pref_child_status
        FROM users u
        JOIN preferences p ON p.user_id = u.id
        LEFT JOIN value_results v ON v.user_id = u.id
        WHERE u.id = $1
    `, userID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	account := &Account{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Gender:      row.Gender,
		DateOfBirth: row.DateOfBirth.Time,
		HeightCm:    row.HeightCm,
		Religion:    row.Religion,
		ChildStatus: row.ChildStatus,
		QuizDone:    row.QuizDone,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
		Preferences: matching.Preferences{
			SexualPreference: row.SexualPreference,
			AgeRange:         matching.Range{Low: row.AgeLow, High: row.AgeHigh},
			HeightRange:      matching.Range{Low: row.HeightLow, High: row.HeightHigh},
			ValuesRange:      matching.Range{Low: row.ValuesLow, High: row.ValuesHigh},
			MaxDistanceKm:    row.MaxDistanceKm,
			LikeFilter:       matching.LikeFilter(row.LikeFilter),
		},
	}
	if row.PrefReligion != 0 {
		c := matching.Category(row.PrefReligion)
		account.Preferences.Religion = &c
	}
	if row.PrefChildStatus != 0 {
		c := matching.Category(row.PrefChildStatus)
		account.Preferences.ChildStatus = &c
	}
	if row.LocationLat != nil && row.LocationLng != nil {
		account.Location = &matching.Coordinates{Lat: *row.LocationLat, Long: *row.LocationLng}
	}

	return account, nil
}

func (r *postgresRepository) UpdatePreferences(ctx context.Context, userID int64, prefs matching.Preferences) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE preferences
        SET sexual_preference = $2, age_low = $3, age_high = $4,
            height_low = $5, height_high = $6, values_low = $7, values_high = $8,
            max_distance_km = $9, like_filter = $10, religion = $11, child_status = $12,
            updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1
    `,
		userID, prefs.SexualPreference,
		prefs.AgeRange.Low, prefs.AgeRange.High,
		prefs.HeightRange.Low, prefs.HeightRange.High,
		prefs.ValuesRange.Low, prefs.ValuesRange.High,
		prefs.MaxDistanceKm, int(prefs.LikeFilter),
		categoryToWire(prefs.Religion), categoryToWire(prefs.ChildStatus),
	)
	if err != nil {
		return err
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *postgresRepository) SaveValueResults(ctx context.Context, userID int64, results matching.ValueResults) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO value_results (
            user_id, self_direction, stimulation, hedonism, achievement, power,
            security, conformity, tradition, benevolence, universalism
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (user_id) DO UPDATE SET
            self_direction = $2, stimulation = $3, hedonism = $4,
            achievement = $5, power = $6, security = $7, conformity = $8,
            tradition = $9, benevolence = $10, universalism = $11,
            completed_at = CURRENT_TIMESTAMP
    `,
		userID,
		results.SelfDirection, results.Stimulation, results.Hedonism,
		results.Achievement, results.Power, results.Security,
		results.Conformity, results.Tradition, results.Benevolence,
		results.Universalism,
	)
	return err
}

func (r *postgresRepository) UpdateLocation(ctx context.Context, userID int64, lat, long float64) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE users
        SET location_lat = $2, location_lng = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1
    `, userID, lat, long)
	if err != nil {
		return err
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrAccountNotFound
	}

	return nil
}
