// Package token mints bearer tokens for local development.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/auth"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/authorization"
)

var (
	env    string
	userID string
	role   string
	email  string
	ttl    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		Long:  `Sign a token with the configured JWT secret. Production tokens come from the identity provider.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the subject claim (required)")
	cmd.Flags().StringVar(&role, "role", string(authorization.RoleUser), "Role claim (user, admin)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if env == "production" {
		return fmt.Errorf("refusing to issue tokens for production")
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)
	signed, err := svc.Issue(userID, authorization.ParseUserRole(role), email, ttl)
	if err != nil {
		return err
	}

	fmt.Println(signed)
	return nil
}
