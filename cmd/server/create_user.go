package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
)

var (
	newUserName     string
	newUserEmail    string
	newUserPassword string
	newUserRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a dashboard account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(newUserPassword) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		user, err := service.NewUserService(db.DB).Create(service.UserInput{
			Name:     newUserName,
			Email:    newUserEmail,
			Password: newUserPassword,
			Role:     newUserRole,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		current.log.Info().Uint("id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("user created")
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&newUserName, "name", "Administrator", "display name")
	createUserCmd.Flags().StringVar(&newUserEmail, "email", "", "login email")
	createUserCmd.Flags().StringVar(&newUserPassword, "password", "", "login password (min 8 characters)")
	createUserCmd.Flags().StringVar(&newUserRole, "role", db.RoleAdmin, "admin or editor")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
