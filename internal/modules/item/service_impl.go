package item

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/auth"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
)

const (
	forbiddenMessage = "You do not have permission to perform this action."
	notFoundMessage  = "Not found."
	conflictMessage  = "Item already exists."
)

type service struct {
	repo   Repository
	cache  Cache
	logger *zap.SugaredLogger
}

// NewService creates a new item service.
func NewService(repo Repository, cache Cache, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, cache: cache, logger: logger}
}

// List serves the full collection through the item:list cache key. On a hit
// the store is not consulted at all.
func (s *service) List(ctx context.Context, caller *user.User) ([]Item, bool, error) {
	if !auth.CanReadItems(caller) {
		return nil, false, apierr.Forbidden(forbiddenMessage)
	}

	cached, hit, err := s.cache.GetList(ctx)
	if err != nil {
		// A broken cache degrades to a miss; the store remains the source of truth.
		s.logger.Warnw("item list cache read failed", "err", err)
	} else if hit {
		return cached, true, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list items: %w", err)
	}
	if err := s.cache.SetList(ctx, items); err != nil {
		s.logger.Warnw("item list cache populate failed", "err", err)
	}
	return items, false, nil
}

func (s *service) Create(ctx context.Context, req CreateItemRequest, caller *user.User) (*Item, error) {
	if !auth.CanCreateItem(caller) {
		return nil, apierr.Forbidden(forbiddenMessage)
	}
	if err := req.Validate(); err != nil {
		return nil, apierr.FromValidation(err)
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check item name: %w", err)
	}
	if exists {
		return nil, apierr.Conflict(conflictMessage)
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		// The unique index catches the race the ExistsByName pre-check leaves open.
		if errors.Is(err, ErrDuplicateName) {
			return nil, apierr.Conflict(conflictMessage)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	// The collection key must be gone before the caller sees the response;
	// an invalidation failure fails the request rather than risk stale reads.
	if err := s.cache.InvalidateList(ctx); err != nil {
		return nil, fmt.Errorf("invalidate item list cache: %w", err)
	}
	return it, nil
}

func (s *service) Retrieve(ctx context.Context, id int64, caller *user.User) (*Item, bool, error) {
	if !auth.CanReadItems(caller) {
		return nil, false, apierr.Forbidden(forbiddenMessage)
	}

	cached, hit, err := s.cache.GetItem(ctx, id)
	if err != nil {
		s.logger.Warnw("item cache read failed", "id", id, "err", err)
	} else if hit {
		return cached, true, nil
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, apierr.NotFound(notFoundMessage)
		}
		return nil, false, fmt.Errorf("get item %d: %w", id, err)
	}
	if err := s.cache.SetItem(ctx, it); err != nil {
		s.logger.Warnw("item cache populate failed", "id", id, "err", err)
	}
	return it, false, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateItemRequest, partial bool, caller *user.User) (*Item, error) {
	if !auth.CanMutateItem(caller) {
		return nil, apierr.Forbidden(forbiddenMessage)
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apierr.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	if err := req.Validate(partial); err != nil {
		return nil, apierr.FromValidation(err)
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.Price != nil {
		it.Price = *req.Price
	}

	if err := s.repo.Update(ctx, it); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apierr.NotFound(notFoundMessage)
		}
		if errors.Is(err, ErrDuplicateName) {
			return nil, apierr.Conflict(conflictMessage)
		}
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}

	if err := s.cache.InvalidateItem(ctx, id); err != nil {
		return nil, fmt.Errorf("invalidate item cache: %w", err)
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, id int64, caller *user.User) error {
	if !auth.CanMutateItem(caller) {
		return apierr.Forbidden(forbiddenMessage)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apierr.NotFound(notFoundMessage)
		}
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if err := s.cache.InvalidateItem(ctx, id); err != nil {
		return fmt.Errorf("invalidate item cache: %w", err)
	}
	return nil
}
