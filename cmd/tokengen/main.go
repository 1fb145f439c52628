package main

import (
	"fmt"
	"os"

	"github.com/chronoworks/timesheet-backend-go/internal/config"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

// tokengen mints access tokens for development and API testing. Production
// tokens come from the identity provider.
func main() {
	var personID, name, role string

	cmd := &cobra.Command{
		Use:          "tokengen",
		Short:        "Mint a development access token for the timesheet API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := user.Role(role)
			if !r.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
			token, expiresAt, err := jwtService.GenerateAccessToken(personID, name, r)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at unix %d\n", expiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&personID, "person", "", "person_id claim")
	cmd.Flags().StringVar(&name, "name", "Dev User", "name claim")
	cmd.Flags().StringVar(&role, "role", string(user.RoleCollaborator), "role claim (collaborator, manager, hr, finance)")
	_ = cmd.MarkFlagRequired("person")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
