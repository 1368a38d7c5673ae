package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "mecanica_hub/docs"
	"mecanica_hub/internal/adapter/http/routes"
	"mecanica_hub/internal/config"
	"mecanica_hub/internal/infrastructure/database"
	"mecanica_hub/internal/infrastructure/logger"
	"mecanica_hub/internal/infrastructure/notifications"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "mechanic-hub"

// @title           Mecánica Hub API
// @version         1.0
// @description     Service request lifecycle between clients and mechanics.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Service request lifecycle API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), routes.Run)
		},
	}
	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "tables",
			Short: "Create the DynamoDB tables if missing",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withRuntime(cmd.Context(), createTables)
			},
		},
		&cobra.Command{
			Use:   "notifier",
			Short: "Mail lifecycle events consumed from NATS",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withRuntime(cmd.Context(), notifications.RunNotifier)
			},
		},
	)
	// Running the binary without a subcommand serves the API.
	root.RunE = serve.RunE
	return root
}

func withRuntime(parent context.Context, run func(context.Context, config.Config, *zap.Logger) error) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, cfg, log)
}

func createTables(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB, log)
	if err != nil {
		return err
	}
	return database.CreateTables(ctx, ddb, cfg.Tables, log)
}
