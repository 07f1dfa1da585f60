package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shophub/internal/config"
	"shophub/internal/database"
	"shophub/internal/logger"
	"shophub/internal/repository"
	"shophub/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shophubctl",
	Short: "Operator tooling for the ShopHub storefront",
	Long: `shophubctl manages the storefront database:
- apply or inspect schema migrations
- load catalog products from YAML seed files`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		log, err = logger.New(cfg.Server.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return database.RunMigrations(db.DB(), log)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return database.GetMigrationStatus(db.DB())
	},
}

var seedTimeout time.Duration

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Create or update catalog products from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := seed.LoadFile(args[0])
		if err != nil {
			return err
		}

		db, err := database.New(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
		defer cancel()

		result, err := seed.Apply(ctx, repository.NewProductRepository(db.DB()), file, log)
		if err != nil {
			return err
		}

		log.Info("Catalog seeded",
			zap.String("file", args[0]),
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().DurationVar(&seedTimeout, "timeout", 2*time.Minute, "Maximum time to spend writing products")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	err := rootCmd.Execute()
	if log != nil {
		log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
