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
	postNotFoundDetail = "Post was not found"
	noPostsDetail      = "You do not have posts"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]types.Post, error)
	ListByUser(ctx context.Context, userID int) ([]types.Post, error)
	Get(ctx context.Context, id int) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	Delete(ctx context.Context, id int) error
}

// CategoryLookup resolves the category a post points at.
type CategoryLookup interface {
	Get(ctx context.Context, id int) (types.Category, error)
}

// PostService encapsulates post use-cases.
type PostService struct {
	posts      PostRepository
	categories CategoryLookup
}

func NewPostService(posts PostRepository, categories CategoryLookup) *PostService {
	return &PostService{posts: posts, categories: categories}
}

func (s *PostService) Create(ctx context.Context, input types.PostInput, caller types.User) (types.Post, error) {
	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return types.Post{}, err
	}

	post, err := s.posts.Create(ctx, types.Post{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
		UserID:     caller.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrReferenceMissing) {
			return types.Post{}, missingCategory(input.CategoryID)
		}
		return types.Post{}, fmt.Errorf("create post: %w", err)
	}

	metrics.RecordPostCreated()
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]types.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListMine returns the caller's posts and fails with NotFound when there
// are none.
func (s *PostService) ListMine(ctx context.Context, caller types.User) ([]types.Post, error) {
	posts, err := s.posts.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, apperr.NotFound(noPostsDetail)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Post{}, apperr.NotFound(postNotFoundDetail)
		}
		return types.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// Update checks existence, then ownership, then the target category.
func (s *PostService) Update(ctx context.Context, id int, input types.PostInput, caller types.User) (types.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return types.Post{}, err
	}
	if err := policy.RequireOwner(caller, post.UserID); err != nil {
		return types.Post{}, err
	}
	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return types.Post{}, err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.CategoryID = input.CategoryID

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return types.Post{}, apperr.NotFound(postNotFoundDetail)
		case errors.Is(err, store.ErrReferenceMissing):
			return types.Post{}, missingCategory(input.CategoryID)
		}
		return types.Post{}, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int, caller types.User) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.RequireOwner(caller, post.UserID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(postNotFoundDetail)
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostService) requireCategory(ctx context.Context, id int) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return missingCategory(id)
		}
		return fmt.Errorf("get category: %w", err)
	}
	return nil
}

func missingCategory(id int) error {
	return apperr.NotFound(fmt.Sprintf("No such category with id %d", id))
}
