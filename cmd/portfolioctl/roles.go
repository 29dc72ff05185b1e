package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

func newPromoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Give an existing account the owner role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRole(cmd, args[0], entity.RoleOwner)
		},
	}
}

func newRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "role <email> <owner|admin|viewer>",
		Short: "Set the role of an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRole(cmd, args[0], entity.Role(args[1]))
		},
	}
}

func setRole(cmd *cobra.Command, email string, role entity.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q: must be owner, admin, or viewer", role)
	}
	svc, done, err := openAuth(cmd.Context(), config.Load())
	if err != nil {
		return err
	}
	defer done()

	u, err := svc.SetRoleByEmail(cmd.Context(), email, role)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		return fmt.Errorf("no account found for %s", email)
	case errors.Is(err, application.ErrLastOwner):
		return errors.New("cannot change the role of the last remaining owner")
	case err != nil:
		return err
	}
	cmd.Printf("%s is now %s\n", u.Email, u.Role)
	return nil
}
