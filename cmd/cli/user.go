package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/internal/domain/access"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/infrastructure/persistence/postgres"
	"github.com/openkyc/kyc/pkg/logger"
)

var (
	createUsername string
	createPassword string
	createFullName string
	createRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

// createUserCmd writes directly to the database. The HTTP API requires an
// admin session to create users, so the first admin has to come from here.
var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !access.KnownRole(createRole) {
			return fmt.Errorf("unknown role %q, expected one of: %s",
				createRole, strings.Join(access.RoleNames(), ", "))
		}
		if len(createPassword) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log := logger.NewNoopLogger()
		db, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(createPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := &models.User{
			ID:           uuid.New().String(),
			Username:     createUsername,
			PasswordHash: string(hash),
			FullName:     createFullName,
			Role:         createRole,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := user.Validate(); err != nil {
			return err
		}

		users := postgres.NewUserRepository(db.DB(), log)
		if err := users.Save(ctx, user); err != nil {
			return err
		}

		fmt.Printf("created user %s (%s) with id %s\n", user.Username, user.Role, user.ID)
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	return config.LoadConfig()
}

func init() {
	createUserCmd.Flags().StringVar(&createUsername, "username", "", "login name")
	createUserCmd.Flags().StringVar(&createPassword, "password", "", "initial password")
	createUserCmd.Flags().StringVar(&createFullName, "full-name", "", "display name")
	createUserCmd.Flags().StringVar(&createRole, "role", "", "role identifier")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
	_ = createUserCmd.MarkFlagRequired("full-name")
	_ = createUserCmd.MarkFlagRequired("role")

	userCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(userCmd)
}
