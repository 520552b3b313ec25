package identity

import (
	"context"
	"errors"
	"fmt"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/models"
	"spacebook/utils"

	"firebase.google.com/go/v4/auth"
)

var (
	// ErrInvalidToken means the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownUser means the token is valid but no usable profile exists.
	ErrUnknownUser = errors.New("user not registered")
)

// Resolver turns a bearer token into the caller identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Caller, error)
}

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseResolver verifies Firebase ID tokens and reads the role from the local profile.
type FirebaseResolver struct {
	verifier TokenVerifier
	users    repository.UserRepository
}

func NewFirebaseResolver(verifier TokenVerifier, users repository.UserRepository) *FirebaseResolver {
	return &FirebaseResolver{verifier: verifier, users: users}
}

func (r *FirebaseResolver) Resolve(ctx context.Context, token string) (models.Caller, error) {
	tok, err := r.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return models.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	u, err := r.users.GetByUID(ctx, tok.UID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.Caller{}, ErrUnknownUser
		}
		return models.Caller{}, fmt.Errorf("load user %s: %w", tok.UID, err)
	}
	userType := models.NormalizeUserType(string(u.UserType))
	if userType == "" {
		return models.Caller{}, ErrUnknownUser
	}
	return models.Caller{UID: tok.UID, UserType: userType, Name: u.Name}, nil
}

// JWTResolver accepts HS256 tokens carrying sub and userType claims.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(_ context.Context, token string) (models.Caller, error) {
	sub, rawType, name, err := utils.ExtractClaims(r.secret, token)
	if err != nil {
		return models.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userType := models.NormalizeUserType(rawType)
	if userType == "" {
		return models.Caller{}, ErrUnknownUser
	}
	return models.Caller{UID: sub, UserType: userType, Name: name}, nil
}
