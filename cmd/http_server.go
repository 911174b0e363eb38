package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/averaldo/permissions-app/internal"
	"github.com/averaldo/permissions-app/internal/bootstrap"
	"github.com/averaldo/permissions-app/internal/notifier"
	"github.com/averaldo/permissions-app/internal/permission"
	permissionPostgres "github.com/averaldo/permissions-app/internal/permission/postgres"
	"github.com/averaldo/permissions-app/internal/permissiontype"
	permissionTypePostgres "github.com/averaldo/permissions-app/internal/permissiontype/postgres"
	"github.com/averaldo/permissions-app/internal/search"
	"github.com/averaldo/permissions-app/internal/transport/rest"
	"github.com/averaldo/permissions-app/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Router    *chi.Mux
	Publisher *notifier.Publisher
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.Publisher.Close(); err != nil {
			deps.Logger.Error("publisher close error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{config.Elasticsearch.URI},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	searchService := search.NewService(esClient, config.Elasticsearch.IndexName, lg)

	publisher, err := notifier.NewPublisher(config.RabbitMQ.URI, config.RabbitMQ.Exchange, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifier: %w", err)
	}

	typeRepo := permissionTypePostgres.NewPermissionTypeRepository(gormDB)
	typeService := permissiontype.NewService(typeRepo, lg)
	typeHandler := permissiontype.NewHandler(typeService)

	permissionRepo := permissionPostgres.NewPermissionRepository(gormDB)
	permissionService := permission.NewService(permissionRepo, typeRepo, searchService, publisher, lg)
	permissionHandler := permission.NewHandler(permissionService)

	// seed reference data and prepare the index before serving; failures are
	// logged, the server still comes up (matching the original behavior)
	bootstrapCtx, cancel := internal.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := bootstrap.Run(bootstrapCtx, typeRepo, searchService, lg); err != nil {
		lg.Error("bootstrap failed", "error", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterConfig{
		DB:                db.DB,
		PermissionHandler: permissionHandler,
		TypeHandler:       typeHandler,
		HealthChecks: map[string]func(ctx context.Context) error{
			"elasticsearch": func(ctx context.Context) error {
				res, err := esClient.Ping(esClient.Ping.WithContext(ctx))
				if err != nil {
					return err
				}
				defer res.Body.Close()
				if res.IsError() {
					return fmt.Errorf("elasticsearch ping: %s", res.Status())
				}
				return nil
			},
		},
		AllowedOrigins: config.Server.AllowedOrigins,
		Logger:         lg,
	})

	return &Dependencies{
		Config:    config,
		Logger:    lg,
		DB:        db,
		Router:    router,
		Publisher: publisher,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
