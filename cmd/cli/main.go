package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/gobank/internal/adapter/form"
	"github.com/iho/gobank/internal/adapter/menu"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/usecase"
)

// bank is the core shared by both front ends for one process.
type bank struct {
	accounts     *usecase.AccountUseCase
	transactions *usecase.TransactionUseCase
	logger       zerolog.Logger
}

func newBank(cfg *config.Config, logOut io.Writer) *bank {
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gobank",
		Output:  logOut,
	})

	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)

	return &bank{
		accounts: usecase.NewAccountUseCase(txManager, accountRepo, nil, log).
			WithDefaultInterestRate(cfg.DefaultInterestRate),
		transactions: usecase.NewTransactionUseCase(txManager, accountRepo, memory.NewULIDGenerator(), nil, log),
		logger:       log,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	loadBank := func(cmd *cobra.Command) (*bank, error) {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}

		cfg, err := config.Load(files...)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}

		return newBank(cfg, cmd.ErrOrStderr()), nil
	}

	runMenu := func(cmd *cobra.Command, _ []string) error {
		b, err := loadBank(cmd)
		if err != nil {
			return err
		}

		return menu.New(b.accounts, b.transactions, cmd.InOrStdin(), cmd.OutOrStdout(), b.logger).
			Run(cmd.Context())
	}

	rootCmd := &cobra.Command{
		Use:           "gobank",
		Short:         "In-memory banking system",
		Long:          `A small banking system with a numbered text menu and a terminal form. Accounts live for the life of the process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (defaults to ./.env when present)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Run the numbered text menu (default)",
		RunE:  runMenu,
	})

	rootCmd.AddCommand(formCmd(loadBank))

	return rootCmd
}

func formCmd(loadBank func(*cobra.Command) (*bank, error)) *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Run the terminal form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := loadBank(cmd)
			if err != nil {
				return err
			}

			dispatcher := form.NewDispatcher(b.accounts, b.transactions)
			return form.New(dispatcher, b.logger,
				form.WithAccessible(accessible),
				form.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
			).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", os.Getenv("ACCESSIBLE") != "", "Use plain prompts instead of the interactive form")

	return cmd
}
