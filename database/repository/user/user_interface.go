package userRepo

import (
	"context"

	"spacebook/models"
)

// UserRepository defines methods for user profile access.
type UserRepository interface {
	// GetByUID retrieves a user by the identity provider's uid.
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	// UpsertFCMToken stores the push token for uid, creating the profile when missing.
	UpsertFCMToken(ctx context.Context, caller models.Caller, token string) error
	// ClearFCMToken removes a token the gateway reported as unregistered.
	ClearFCMToken(ctx context.Context, uid, token string) error
	EnsureIndexes(ctx context.Context) error
}
