package cmd

import (
	"errors"
	"fmt"
	"time"

	"spacebook/config"
	"spacebook/models"
	"spacebook/utils"

	"github.com/spf13/cobra"
)

var tokenOpts struct {
	uid      string
	userType string
	name     string
	ttl      time.Duration
}

// tokenCmd signs bearer tokens for AUTH_PROVIDER=jwt deployments.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed bearer token for jwt auth mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := issueToken(config.AppConfig.JWTSecret, tokenOpts.uid, tokenOpts.userType, tokenOpts.name, tokenOpts.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOpts.uid, "uid", "", "subject uid")
	tokenCmd.Flags().StringVar(&tokenOpts.userType, "type", string(models.UserTypeCustomer), "customer, vendor or admin")
	tokenCmd.Flags().StringVar(&tokenOpts.name, "name", "", "display name")
	tokenCmd.Flags().DurationVar(&tokenOpts.ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("uid")
}

func issueToken(secret, uid, userType, name string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	if uid == "" {
		return "", errors.New("uid is required")
	}
	role := models.NormalizeUserType(userType)
	if role == "" {
		return "", fmt.Errorf("unknown user type %q", userType)
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	return utils.GenerateToken([]byte(secret), uid, string(role), name, ttl)
}
