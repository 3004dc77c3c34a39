package matching

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Profiles
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)
	// QueryCandidatePopulation narrows by the cheap indexable predicates
	// (quiz completed, exclude self, and under preference-gated modes the
	// mutual gender and height predicates); the CandidateFilter applies
	// the remaining computed gates.
	QueryCandidatePopulation(ctx context.Context, requester *UserProfile) ([]*UserProfile, error)

	// Likes & matches. RecordLike inserts the like edge, checks for the
	// reverse edge and writes the match inside one transaction, so the
	// mutual check and the both-sided write are indivisible.
	RecordLike(ctx context.Context, likerID, likedID int64) (mutual bool, err error)
	RemoveLike(ctx context.Context, likerID, likedID int64) error
	GetMatchedProfiles(ctx context.Context, userID int64) ([]*UserProfile, error)

	// Notifications
	CreateNotification(ctx context.Context, n *MatchNotification) error
	GetUnseenNotifications(ctx context.Context, userID int64) ([]*MatchNotification, error)
	MarkNotificationSeen(ctx context.Context, notificationID string, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// profileRow is the flat scan target for the profile join
type profileRow struct {
	ID          int64     `db:"id"`
	DisplayName string    `db:"display_name"`
	Gender      string    `db:"gender"`
	DateOfBirth time.Time `db:"date_of_birth"`
	HeightCm    int       `db:"height_cm"`
	LocationLat *float64  `db:"location_lat"`
	LocationLng *float64  `db:"location_lng"`
	Religion    int       `db:"religion"`
	ChildStatus int       `db:"child_status"`
	CreatedAt   time.Time `db:"created_at"`

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

	SelfDirection *float64 `db:"self_direction"`
	Stimulation   *float64 `db:"stimulation"`
	Hedonism      *float64 `db:"hedonism"`
	Achievement   *float64 `db:"achievement"`
	Power         *float64 `db:"power"`
	Security      *float64 `db:"security"`
	Conformity    *float64 `db:"conformity"`
	Tradition     *float64 `db:"tradition"`
	Benevolence   *float64 `db:"benevolence"`
	Universalism  *float64 `db:"universalism"`
}

const profileColumns = `
        u.id, u.display_name, u.gender, u.date_of_birth, u.height_cm,
        u.location_lat, u.location_lng, u.religion, u.child_status, u.created_at,
        p.sexual_preference, p.age_low, p.age_high, p.height_low, p.height_high,
        p.values_low, p.values_high, p.max_distance_km, p.like_filter,
        p.religion AS pref_religion, p.child_status AS pref_child_status,
        v.self_direction, v.stimulation, v.hedonism, v.achievement, v.power,
        v.security, v.conformity, v.tradition, v.benevolence, v.universalism
`

func (row *profileRow) toProfile() *UserProfile {
	profile := &UserProfile{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Gender:      row.Gender,
		DateOfBirth: row.DateOfBirth,
		HeightCm:    row.HeightCm,
		Religion:    Category(row.Religion),
		ChildStatus: Category(row.ChildStatus),
		CreatedAt:   row.CreatedAt,
		Likes:       make(map[int64]struct{}),
		Matches:     make(map[int64]struct{}),
		Preferences: Preferences{
			SexualPreference: row.SexualPreference,
			AgeRange:         Range{Low: row.AgeLow, High: row.AgeHigh},
			HeightRange:      Range{Low: row.HeightLow, High: row.HeightHigh},
			ValuesRange:      Range{Low: row.ValuesLow, High: row.ValuesHigh},
			MaxDistanceKm:    row.MaxDistanceKm,
			LikeFilter:       LikeFilter(row.LikeFilter),
			Religion:         categoryFromWire(row.PrefReligion),
			ChildStatus:      categoryFromWire(row.PrefChildStatus),
		},
	}

	if row.LocationLat != nil && row.LocationLng != nil {
		profile.Location = &Coordinates{Lat: *row.LocationLat, Long: *row.LocationLng}
	}

	// The join is LEFT on value_results; a row with no results means the
	// questionnaire was never completed
	if row.SelfDirection != nil {
		profile.ValueResults = &ValueResults{
			SelfDirection: *row.SelfDirection,
			Stimulation:   *row.Stimulation,
			Hedonism:      *row.Hedonism,
			Achievement:   *row.Achievement,
			Power:         *row.Power,
			Security:      *row.Security,
			Conformity:    *row.Conformity,
			Tradition:     *row.Tradition,
			Benevolence:   *row.Benevolence,
			Universalism:  *row.Universalism,
		}
	}

	return profile
}

// categoryFromWire keeps the legacy convention: stored 0 means "any"
func categoryFromWire(v int) *Category {
	if v == 0 {
		return nil
	}
	c := Category(v)
	return &c
}

func (r *postgresRepository) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM users u
        JOIN preferences p ON p.user_id = u.id
        LEFT JOIN value_results v ON v.user_id = u.id
        WHERE u.id = $1
    `

	var row profileRow
	err := r.db.GetContext(ctx, &row, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	profile := row.toProfile()
	if err := r.loadEdges(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// loadEdges populates the likes and matches sets for a single profile
func (r *postgresRepository) loadEdges(ctx context.Context, profile *UserProfile) error {
	var likedIDs []int64
	err := r.db.SelectContext(ctx, &likedIDs,
		`SELECT liked_id FROM likes WHERE liker_id = $1`, profile.ID)
	if err != nil {
		return err
	}
	for _, id := range likedIDs {
		profile.Likes[id] = struct{}{}
	}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT user1_id, user2_id FROM matches WHERE user1_id = $1 OR user2_id = $1`, profile.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u1, u2 int64
		if err := rows.Scan(&u1, &u2); err != nil {
			continue
		}
		if u1 == profile.ID {
			profile.Matches[u2] = struct{}{}
		} else {
			profile.Matches[u1] = struct{}{}
		}
	}

	return rows.Err()
}

func (r *postgresRepository) QueryCandidatePopulation(ctx context.Context, requester *UserProfile) ([]*UserProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM users u
        JOIN preferences p ON p.user_id = u.id
        JOIN value_results v ON v.user_id = u.id
        WHERE u.id <> $1
          AND NOT u.deactivated
    `
	args := []interface{}{requester.ID}

	// Under preference-gated modes the mutual gender and height predicates
	// are pushed down; they are cheap and indexable
	if requester.Preferences.LikeFilter.RequiresPreferenceGate() {
		query += `
          AND POSITION(u.gender IN $2) > 0
          AND POSITION($3 IN p.sexual_preference) > 0
          AND u.height_cm BETWEEN $4 AND $5
        `
		args = append(args,
			requester.Preferences.SexualPreference,
			requester.Gender,
			requester.Preferences.HeightRange.Low,
			requester.Preferences.HeightRange.High,
		)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var population []*UserProfile
	for rows.Next() {
		var row profileRow
		if err := rows.StructScan(&row); err != nil {
			continue
		}
		population = append(population, row.toProfile())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One query resolves the like gate for the whole page: who has liked
	// the requester
	var likerIDs []int64
	err = r.db.SelectContext(ctx, &likerIDs,
		`SELECT liker_id FROM likes WHERE liked_id = $1`, requester.ID)
	if err != nil {
		return nil, err
	}
	likedBy := make(map[int64]struct{}, len(likerIDs))
	for _, id := range likerIDs {
		likedBy[id] = struct{}{}
	}
	for _, candidate := range population {
		if _, ok := likedBy[candidate.ID]; ok {
			candidate.Likes[requester.ID] = struct{}{}
		}
	}

	return population, nil
}

func (r *postgresRepository) RecordLike(ctx context.Context, likerID, likedID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
        INSERT INTO likes (liker_id, liked_id)
        VALUES ($1, $2)
        ON CONFLICT (liker_id, liked_id) DO NOTHING
    `, likerID, likedID)
	if err != nil {
		return false, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		return false, ErrAlreadyLiked
	}

	var mutual bool
	err = tx.GetContext(ctx, &mutual, `
        SELECT EXISTS(
            SELECT 1 FROM likes WHERE liker_id = $1 AND liked_id = $2
        )
    `, likedID, likerID)
	if err != nil {
		return false, err
	}

	if mutual {
		// Consistent pair ordering, same convention everywhere
		user1, user2 := likerID, likedID
		if user1 > user2 {
			user1, user2 = user2, user1
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO matches (user1_id, user2_id)
            VALUES ($1, $2)
            ON CONFLICT (user1_id, user2_id) DO NOTHING
        `, user1, user2)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return mutual, nil
}

func (r *postgresRepository) RemoveLike(ctx context.Context, likerID, likedID int64) error {
	// Deliberately leaves any existing match untouched; a match, once
	// formed, is only dissolved by an explicit unmatch flow
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE liker_id = $1 AND liked_id = $2`, likerID, likedID)
	if err != nil {
		return err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLikeNotFound
	}

	return nil
}

func (r *postgresRepository) GetMatchedProfiles(ctx context.Context, userID int64) ([]*UserProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM matches m
        JOIN users u ON u.id = CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END
        JOIN preferences p ON p.user_id = u.id
        LEFT JOIN value_results v ON v.user_id = u.id
        WHERE m.user1_id = $1 OR m.user2_id = $1
        ORDER BY m.matched_at DESC
    `

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*UserProfile
	for rows.Next() {
		var row profileRow
		if err := rows.StructScan(&row); err != nil {
			continue
		}
		profiles = append(profiles, row.toProfile())
	}

	return profiles, rows.Err()
}

func (r *postgresRepository) CreateNotification(ctx context.Context, n *MatchNotification) error {
	query := `
        INSERT INTO match_notifications (id, user_id, other_user_id)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `

	return r.db.QueryRowxContext(ctx, query, n.ID, n.UserID, n.OtherUserID).Scan(&n.CreatedAt)
}

func (r *postgresRepository) GetUnseenNotifications(ctx context.Context, userID int64) ([]*MatchNotification, error) {
	var notifications []*MatchNotification
	err := r.db.SelectContext(ctx, &notifications, `
        SELECT id, user_id, other_user_id, created_at, seen
        FROM match_notifications
        WHERE user_id = $1 AND seen = FALSE
        ORDER BY created_at DESC
    `, userID)
	return notifications, err
}

func (r *postgresRepository) MarkNotificationSeen(ctx context.Context, notificationID string, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE match_notifications SET seen = TRUE
        WHERE id = $1 AND user_id = $2
    `, notificationID, userID)
	return err
}
