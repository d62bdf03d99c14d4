/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitriy-lar/SocialNetworkAPI/config"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/db"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
)

var (
	adminEmail    string
	adminPassword string
)

// adminCmd groups account maintenance commands.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account directly in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(adminEmail)
		if email == "" || adminPassword == "" {
			return errors.New("--email and --password are required")
		}

		cfg := config.LoadConfig()
		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		users := services.NewUserService(
			store.NewUserRepository(dbConn),
			credentials.New(cfg.Auth.JWTSecret),
			cfg.Auth.TokenTTL,
			cfg.Auth.AdminKey,
		)
		user, err := users.SeedAdmin(cmd.Context(), email, adminPassword)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd)

	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
}
