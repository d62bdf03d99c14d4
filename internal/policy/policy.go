// Package policy holds the allow/deny rules for authenticated callers.
package policy

import (
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const (
	notAdminDetail = "You do not have enough permissions"
	notOwnerDetail = "You are not an owner of this post"
	selfLikeDetail = "Owner of the post cannot like it"
)

func RequireAdmin(user types.User) error {
	if !user.IsAdmin {
		return apperr.Forbidden(notAdminDetail)
	}
	return nil
}

func RequireOwner(user types.User, ownerID int) error {
	if user.ID != ownerID {
		return apperr.Forbidden(notOwnerDetail)
	}
	return nil
}

// ForbidSelfLike denies a like from the post's own author.
func ForbidSelfLike(user types.User, postOwnerID int) error {
	if user.ID == postOwnerID {
		return apperr.Forbidden(selfLikeDetail)
	}
	return nil
}
