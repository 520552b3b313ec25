package cmd

import (
	"context"
	"testing"
	"time"

	"spacebook/models"
	"spacebook/services/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenResolves(t *testing.T) {
	token, err := issueToken("s3cret", "vendor-1", "vendor", "Ravi", time.Hour)
	require.NoError(t, err)

	caller, err := identity.NewJWTResolver("s3cret").Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.Caller{UID: "vendor-1", UserType: models.UserTypeVendor, Name: "Ravi"}, caller)
}

func TestIssueTokenRejects(t *testing.T) {
	tests := []struct {
		name                  string
		secret, uid, userType string
		ttl                   time.Duration
	}{
		{"no secret", "", "u1", "customer", time.Hour},
		{"no uid", "s", "", "customer", time.Hour},
		{"unknown role", "s", "u1", "superuser", time.Hour},
		{"zero ttl", "s", "u1", "customer", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issueToken(tt.secret, tt.uid, tt.userType, "", tt.ttl)
			assert.Error(t, err)
		})
	}
}
