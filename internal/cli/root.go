// Package cli implements peerprepctl, the operator command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/config"
	"github.com/peerprep/backend/internal/observability"
	"github.com/peerprep/backend/internal/persistence"
	"github.com/peerprep/backend/internal/repository"
	"github.com/peerprep/backend/internal/service"
)

// Env holds what the subcommands operate on.
type Env struct {
	Logger  *zap.Logger
	Users   *service.UserService
	Tokens  *auth.TokenManager
	Migrate func() error
	Close   func()
}

// Opener builds the Env once flags are parsed.
type Opener func(ctx context.Context, cfg *config.Config) (*Env, error)

var flagLogLevel string

// NewRootCmd creates the root command backed by Postgres.
func NewRootCmd() *cobra.Command {
	return newRootCmd(config.Load, OpenPostgres)
}

func newRootCmd(load func() (*config.Config, error), open Opener) *cobra.Command {
	var env *Env

	root := &cobra.Command{
		Use:   "peerprepctl",
		Short: "Operate the PeerPrep backend",
		Long:  "peerprepctl applies schema migrations, manages admin privileges and mints session tokens.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if flagLogLevel != "" {
				cfg.Logger.Level = flagLogLevel
			}
			env, err = open(cmd.Context(), cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env != nil && env.Close != nil {
				env.Close()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	current := func() *Env { return env }
	root.AddCommand(
		newMigrateCmd(current),
		newUserCmd(current),
		newTokenCmd(current),
	)
	return root
}

// OpenPostgres connects to the configured database.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*Env, error) {
	if cfg.Postgres.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	users := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo: repository.NewUserRepository(pg.Pool),
		Tokens:   tokens,
		Logger:   logger,
	})

	return &Env{
		Logger:  logger,
		Users:   users,
		Tokens:  tokens,
		Migrate: func() error { return persistence.RunMigrations(cfg.Postgres.DSN, logger) },
		Close: func() {
			pg.Close()
			_ = logger.Sync()
		},
	}, nil
}
