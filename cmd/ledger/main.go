package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iho/minledger/internal/adapter/console"
	"github.com/iho/minledger/internal/domain"
	"github.com/iho/minledger/internal/infrastructure/config"
	"github.com/iho/minledger/internal/infrastructure/logger"
	"github.com/iho/minledger/internal/infrastructure/postgres"
)

// errReported marks errors whose message was already printed to the user.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Single-account balance ledger",
		Long:          `An interactive menu for viewing, crediting and debiting a single account balance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				stopHTTP := a.startHTTP()
				defer stopHTTP()

				shell := console.NewShell(a.ledger, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
				return shell.Run(ctx)
			})
		},
	}

	rootCmd.AddCommand(
		newBalanceCmd(),
		newAmountCmd(domain.OperationCredit),
		newAmountCmd(domain.OperationDebit),
		newMigrateCmd(),
	)

	return rootCmd
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				fmt.Fprintln(cmd.OutOrStdout(), console.BalanceLine(domain.OperationInquire, a.ledger.Inquire(ctx)))
				return nil
			})
		},
	}
}

func newAmountCmd(op domain.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   op.String() + " <amount>",
		Short: fmt.Sprintf("Apply a %s to the balance", op),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := domain.ParseAmount(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), console.DescribeError(err))
				return errReported
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				balance, err := a.ledger.Execute(ctx, domain.Command{Operation: op, Amount: amount})
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), console.DescribeError(err))
					return errReported
				}

				fmt.Fprintln(cmd.OutOrStdout(), console.BalanceLine(op, balance))
				return nil
			})
		},
	}
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres balance store schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger).Up()
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger).Down()
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

// withApp loads configuration, builds the app and runs fn with a context
// canceled on SIGINT or SIGTERM.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log.Logger)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}

// loadConfig reads the environment and installs the global logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	zerolog.DefaultContextLogger = &appLogger
	log.Logger = appLogger

	return cfg, nil
}
