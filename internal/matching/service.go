// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"log"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrQuizIncomplete     = errors.New("values questionnaire not completed")
	ErrInvalidPreferences = errors.New("invalid preferences")
	ErrAlreadyLiked       = errors.New("user already liked")
	ErrLikeNotFound       = errors.New("like not found")
	ErrCannotLikeSelf     = errors.New("cannot like yourself")
)

// Notifier delivers a match notification to a connected client. The
// websocket hub implements it; a nil notifier is a no-op.
type Notifier interface {
	NotifyMatch(userID int64, notification *MatchNotification)
}

type Service interface {
	// Discovery
	FindMatchCandidates(ctx context.Context, requesterID int64, skip, limit int, key SortKey, direction SortDirection) (*DiscoverResult, error)
	ComputeCompatibility(ctx context.Context, userAID, userBID int64) (int, error)

	// Like graph
	LikeUser(ctx context.Context, likerID, likedID int64) (*LikeResult, error)
	UnlikeUser(ctx context.Context, likerID, unlikedID int64) error

	// Matches & notifications
	GetMatches(ctx context.Context, userID int64) ([]*UserProfile, error)
	GetUnseenNotifications(ctx context.Context, userID int64) ([]*MatchNotification, error)
	MarkNotificationSeen(ctx context.Context, notificationID string, userID int64) error
}

// Options tune the service; zero values fall back to defaults
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

type service struct {
	repo     Repository
	filter   *CandidateFilter
	scorer   ScoringStrategy
	cache    *ScoreCache
	notifier Notifier
	locks    pairLocks

	defaultPageSize int
	maxPageSize     int
}

func NewService(repo Repository, scorer ScoringStrategy, cache *ScoreCache, notifier Notifier, opts Options) Service {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 10
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 50
	}

	return &service{
		repo:            repo,
		filter:          NewCandidateFilter(scorer),
		scorer:          scorer,
		cache:           cache,
		notifier:        notifier,
		defaultPageSize: opts.DefaultPageSize,
		maxPageSize:     opts.MaxPageSize,
	}
}

func (s *service) FindMatchCandidates(ctx context.Context, requesterID int64, skip, limit int, key SortKey, direction SortDirection) (*DiscoverResult, error) {
	requester, err := s.repo.GetUserProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	// Short-circuit before any filtering work; the client renders a
	// "finish the quiz" state, not an empty result
	if !requester.HasCompletedQuiz() {
		return nil, ErrQuizIncomplete
	}

	population, err := s.repo.QueryCandidatePopulation(ctx, requester)
	if err != nil {
		return nil, err
	}

	candidates, err := s.filter.Filter(requester, population)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	result := Rank(candidates, key, direction, skip, limit)
	RecordDiscovery(len(result.Items))

	return &result, nil
}

func (s *service) ComputeCompatibility(ctx context.Context, userAID, userBID int64) (int, error) {
	if score, ok := s.cache.Get(ctx, userAID, userBID); ok {
		return score, nil
	}

	userA, err := s.repo.GetUserProfile(ctx, userAID)
	if err != nil {
		return 0, err
	}
	userB, err := s.repo.GetUserProfile(ctx, userBID)
	if err != nil {
		return 0, err
	}

	// A missing questionnaire means ineligible, never a zero score
	if !userA.HasCompletedQuiz() || !userB.HasCompletedQuiz() {
		return 0, ErrQuizIncomplete
	}

	score := s.scorer.Score(*userA.ValueResults, *userB.ValueResults)
	s.cache.Set(ctx, userAID, userBID, score)
	RecordCompatibilityScore(score)

	return score, nil
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*UserProfile, error) {
	if _, err := s.repo.GetUserProfile(ctx, userID); err != nil {
		return nil, err
	}

	profiles, err := s.repo.GetMatchedProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A matched account can disappear between the edge query and the
	// profile load (deletion); skip rather than fail the whole listing
	live := profiles[:0]
	for _, p := range profiles {
		if p == nil {
			log.Printf("skipping deactivated match for user %d", userID)
			continue
		}
		live = append(live, p)
	}

	return live, nil
}

func (s *service) GetUnseenNotifications(ctx context.Context, userID int64) ([]*MatchNotification, error) {
	return s.repo.GetUnseenNotifications(ctx, userID)
}

func (s *service) MarkNotificationSeen(ctx context.Context, notificationID string, userID int64) error {
	return s.repo.MarkNotificationSeen(ctx, notificationID, userID)
}
