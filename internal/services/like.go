package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/metrics"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/policy"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const (
	likedMessage   = "Post was successfully liked"
	unlikedMessage = "Post was successfully unliked"
)

// LikeRepository flips the shared like state of a post.
type LikeRepository interface {
	Toggle(ctx context.Context, postID, userID int) (bool, error)
}

// PostLookup loads the post being liked.
type PostLookup interface {
	Get(ctx context.Context, id int) (types.Post, error)
}

// LikeResult reports the state a toggle left the post in.
type LikeResult struct {
	Liked   bool
	Message string
}

type LikeService struct {
	likes LikeRepository
	posts PostLookup
}

func NewLikeService(likes LikeRepository, posts PostLookup) *LikeService {
	return &LikeService{likes: likes, posts: posts}
}

// Toggle likes the post if it is not liked yet and unlikes it otherwise.
// Authors cannot like their own posts.
func (s *LikeService) Toggle(ctx context.Context, postID int, caller types.User) (LikeResult, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LikeResult{}, apperr.NotFound(postNotFoundDetail)
		}
		return LikeResult{}, fmt.Errorf("get post: %w", err)
	}
	if err := policy.ForbidSelfLike(caller, post.UserID); err != nil {
		return LikeResult{}, err
	}

	liked, err := s.likes.Toggle(ctx, postID, caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrReferenceMissing) {
			return LikeResult{}, apperr.NotFound(postNotFoundDetail)
		}
		return LikeResult{}, fmt.Errorf("toggle like: %w", err)
	}

	metrics.RecordLikeToggled(liked)
	result := LikeResult{Liked: liked, Message: unlikedMessage}
	if liked {
		result.Message = likedMessage
	}
	return result, nil
}
