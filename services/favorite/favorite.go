package favorite

import (
	"context"
	"errors"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/models"
	"spacebook/services/booking"
)

type FavoriteService interface {
	Add(ctx context.Context, caller models.Caller, propertyID string) (*models.Favorite, error)
	Remove(ctx context.Context, caller models.Caller, propertyID string) error
	List(ctx context.Context, caller models.Caller) ([]models.Favorite, error)
	IsFavorite(ctx context.Context, caller models.Caller, propertyID string) (bool, error)
}

type DefaultFavoriteService struct {
	Favorites  repository.FavoriteRepository
	Properties repository.PropertyRepository
}

func NewFavoriteService(repos *repository.Repositories) *DefaultFavoriteService {
	return &DefaultFavoriteService{Favorites: repos.Favorites, Properties: repos.Properties}
}

func internal(msg string, err error) error {
	return &booking.Error{Kind: booking.KindInternal, Code: "serverError", Message: msg, Err: err}
}

func (s *DefaultFavoriteService) Add(ctx context.Context, caller models.Caller, propertyID string) (*models.Favorite, error) {
	if propertyID == "" {
		return nil, &booking.Error{Kind: booking.KindValidation, Code: "missingPropertyId", Message: "property id is required"}
	}
	if _, err := s.Properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, &booking.Error{Kind: booking.KindNotFound, Code: "propertyNotFound", Message: "property not found"}
		}
		return nil, internal("failed to load property", err)
	}

	fav := &models.Favorite{CustomerID: caller.UID, PropertyID: propertyID}
	if err := s.Favorites.Add(ctx, fav); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, &booking.Error{Kind: booking.KindConflict, Code: "alreadyFavorite", Message: "property already in favorites"}
		}
		return nil, internal("failed to add favorite", err)
	}
	return fav, nil
}

func (s *DefaultFavoriteService) Remove(ctx context.Context, caller models.Caller, propertyID string) error {
	if err := s.Favorites.Remove(ctx, caller.UID, propertyID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return &booking.Error{Kind: booking.KindNotFound, Code: "favoriteNotFound", Message: "favorite not found"}
		}
		return internal("failed to remove favorite", err)
	}
	return nil
}

func (s *DefaultFavoriteService) List(ctx context.Context, caller models.Caller) ([]models.Favorite, error) {
	favs, err := s.Favorites.ListByCustomer(ctx, caller.UID)
	if err != nil {
		return nil, internal("failed to list favorites", err)
	}
	return favs, nil
}

func (s *DefaultFavoriteService) IsFavorite(ctx context.Context, caller models.Caller, propertyID string) (bool, error) {
	ok, err := s.Favorites.Exists(ctx, caller.UID, propertyID)
	if err != nil {
		return false, internal("failed to check favorite", err)
	}
	return ok, nil
}
