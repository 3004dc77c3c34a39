// internal/matching/likes.go
// The like graph: directed like edges, mutual-like detection, and the
// single match notification the mutual transition produces.

package matching

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// pairLocks serializes the like/match transition per user pair. The
// repository transaction already makes the edge writes atomic; the lock
// additionally makes the notification decision race-free when both sides
// like each other at the same instant.
type pairLocks struct {
	stripes [64]sync.Mutex
}

func (p *pairLocks) lock(a, b int64) *sync.Mutex {
	if a > b {
		a, b = b, a
	}
	idx := uint64(a*31+b) % uint64(len(p.stripes))
	mu := &p.stripes[idx]
	mu.Lock()
	return mu
}

// LikeUser records a directed like and, when it completes a mutual pair,
// writes both sides of the match and notifies the party who liked first.
// At most one notification is ever emitted per pair.
func (s *service) LikeUser(ctx context.Context, likerID, likedID int64) (*LikeResult, error) {
	if likerID == likedID {
		return nil, ErrCannotLikeSelf
	}

	// Both parties must exist; liking a vanished profile is a NotFound
	if _, err := s.repo.GetUserProfile(ctx, likerID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserProfile(ctx, likedID); err != nil {
		return nil, err
	}

	mu := s.locks.lock(likerID, likedID)
	defer mu.Unlock()

	mutual, err := s.repo.RecordLike(ctx, likerID, likedID)
	if err != nil {
		// ErrAlreadyLiked is reported distinctly and mutates nothing
		return nil, err
	}

	result := &LikeResult{
		LikerID: likerID,
		LikedID: likedID,
		Matched: mutual,
	}
	RecordLike(mutual)

	if mutual {
		// The liked party liked first; the notification goes to them
		notification := &MatchNotification{
			ID:          uuid.NewString(),
			UserID:      likedID,
			OtherUserID: likerID,
		}
		if err := s.repo.CreateNotification(ctx, notification); err != nil {
			// The match stands; losing the notification row is logged,
			// not fatal
			log.Printf("failed to store match notification for user %d: %v", likedID, err)
		} else {
			result.Notification = notification
		}

		if s.notifier != nil {
			s.notifier.NotifyMatch(likedID, notification)
		}
		RecordMatch()
	}

	return result, nil
}

// UnlikeUser removes the like edge only. An existing match is never
// revoked here; the source behavior treats matches as permanent once
// formed, and product has not asked for post-hoc unmatching.
func (s *service) UnlikeUser(ctx context.Context, likerID, unlikedID int64) error {
	if _, err := s.repo.GetUserProfile(ctx, likerID); err != nil {
		return err
	}

	return s.repo.RemoveLike(ctx, likerID, unlikedID)
}
