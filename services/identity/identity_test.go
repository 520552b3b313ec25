package identity_test

import (
	"context"
	"testing"
	"time"

	"spacebook/models"
	"spacebook/services/identity"
	"spacebook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTResolver(t *testing.T) {
	secret := "test-secret"
	r := identity.NewJWTResolver(secret)

	tok, err := utils.GenerateToken([]byte(secret), "u1", "employer", "Vee", time.Hour)
	require.NoError(t, err)

	caller, err := r.Resolve(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, models.Caller{UID: "u1", UserType: models.UserTypeVendor, Name: "Vee"}, caller)
}

func TestJWTResolverRejects(t *testing.T) {
	r := identity.NewJWTResolver("test-secret")

	other, err := utils.GenerateToken([]byte("other"), "u1", "customer", "", time.Hour)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), other)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	expired, err := utils.GenerateToken([]byte("test-secret"), "u1", "customer", "", -time.Minute)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), expired)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)

	noRole, err := utils.GenerateToken([]byte("test-secret"), "u1", "guest", "", time.Hour)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), noRole)
	assert.ErrorIs(t, err, identity.ErrUnknownUser)
}
