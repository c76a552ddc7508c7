package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camden-git/policeportal/models"
	"github.com/camden-git/policeportal/repository"
)

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Creates an account that can log in. Officers are the users cases can
be assigned to.

Example:
  policeportal user create --name "Jane Doe" --email jane@example.org --password secret --role officer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		role := models.Role(userRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role '%s' (want one of %v)", userRole, models.Roles)
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}

		user := &models.User{Name: userName, Email: userEmail, Role: role}
		if err := user.SetPassword(userPassword); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if err := repository.NewGormUserRepository(db).Create(cmd.Context(), user); err != nil {
			return err
		}

		logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("email", user.Email), zap.String("role", string(role)))
		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userName, "name", "", "display name")
	f.StringVar(&userEmail, "email", "", "login email")
	f.StringVar(&userPassword, "password", "", "login password")
	f.StringVar(&userRole, "role", string(models.RoleOfficer), "admin, officer or user")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
