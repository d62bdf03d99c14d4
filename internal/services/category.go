package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/apperr"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/policy"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const (
	categoryExistsDetail   = "Category already exists"
	categoryNotFoundDetail = "Category was not found"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]types.Category, error)
	Get(ctx context.Context, id int) (types.Category, error)
	GetByTitle(ctx context.Context, title string) (types.Category, error)
	Create(ctx context.Context, category types.Category) (types.Category, error)
	Update(ctx context.Context, category types.Category) (types.Category, error)
	Delete(ctx context.Context, id int) error
}

// CategoryService encapsulates category use-cases. Writes are limited to
// admins.
type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, title string, caller types.User) (types.Category, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return types.Category{}, err
	}
	if err := s.ensureTitleFree(ctx, title, 0); err != nil {
		return types.Category{}, err
	}

	category, err := s.repo.Create(ctx, types.Category{Title: title})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.Category{}, apperr.Conflict(categoryExistsDetail)
		}
		return types.Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]types.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (types.Category, error) {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Category{}, apperr.NotFound(categoryNotFoundDetail)
		}
		return types.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, title string, caller types.User) (types.Category, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return types.Category{}, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return types.Category{}, err
	}
	if err := s.ensureTitleFree(ctx, title, id); err != nil {
		return types.Category{}, err
	}

	category, err := s.repo.Update(ctx, types.Category{ID: id, Title: title})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return types.Category{}, apperr.NotFound(categoryNotFoundDetail)
		case errors.Is(err, store.ErrConflict):
			return types.Category{}, apperr.Conflict(categoryExistsDetail)
		}
		return types.Category{}, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category together with its posts.
func (s *CategoryService) Delete(ctx context.Context, id int, caller types.User) error {
	if err := policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(categoryNotFoundDetail)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ensureTitleFree fails with Conflict when another category already uses
// title. exceptID skips the category being renamed.
func (s *CategoryService) ensureTitleFree(ctx context.Context, title string, exceptID int) error {
	existing, err := s.repo.GetByTitle(ctx, title)
	if err == nil {
		if existing.ID == exceptID {
			return nil
		}
		return apperr.Conflict(categoryExistsDetail)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check category title: %w", err)
	}
	return nil
}
