package cli

import (
	"fmt"

	"skill-match/internal/config"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tokenCmd mints access tokens for local development. Account management
// lives outside this service.
func tokenCmd(v *viper.Viper) *cobra.Command {
	var userID, role, email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user id and role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(v, config.NeedJWT)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}
			r, err := user.ParseRole(role)
			if err != nil {
				return fmt.Errorf("invalid --role %q: %w", role, err)
			}

			svc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.AccessExpiresIn)
			token, err := svc.GenerateAccessToken(user.Account{ID: id, Email: email, Role: r})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "account id (uuid)")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "employee, employer or admin")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
