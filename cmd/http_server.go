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

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/auth"
	authPostgres "github.com/mfauzanap/event-registration/internal/auth/postgres"
	"github.com/mfauzanap/event-registration/internal/core/events"
	"github.com/mfauzanap/event-registration/internal/directory"
	directoryPostgres "github.com/mfauzanap/event-registration/internal/directory/postgres"
	"github.com/mfauzanap/event-registration/internal/event"
	eventPostgres "github.com/mfauzanap/event-registration/internal/event/postgres"
	"github.com/mfauzanap/event-registration/internal/formschema"
	formschemaPostgres "github.com/mfauzanap/event-registration/internal/formschema/postgres"
	"github.com/mfauzanap/event-registration/internal/inscription"
	inscriptionPostgres "github.com/mfauzanap/event-registration/internal/inscription/postgres"
	"github.com/mfauzanap/event-registration/internal/notification"
	notificationPostgres "github.com/mfauzanap/event-registration/internal/notification/postgres"
	"github.com/mfauzanap/event-registration/internal/report"
	reportPostgres "github.com/mfauzanap/event-registration/internal/report/postgres"
	"github.com/mfauzanap/event-registration/internal/storage"
	"github.com/mfauzanap/event-registration/internal/transport/rest"
	"github.com/mfauzanap/event-registration/internal/user"
	userPostgres "github.com/mfauzanap/event-registration/internal/user/postgres"
	"github.com/mfauzanap/event-registration/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router http.Handler
	Logger *slog.Logger
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

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
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

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx: %w", err)
	}

	router, err := buildRouter(config, db, gormDB, lg)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// buildRouter wires repositories, services, the event bus and all handlers.
func buildRouter(config *internal.Config, db *sqlx.DB, gormDB *gorm.DB, lg *slog.Logger) (http.Handler, error) {
	bus := events.NewEventBus(lg)

	fileStore, err := storage.NewFileStore(
		config.Uploads.Dir,
		config.Uploads.BaseURL,
		config.Uploads.MaxSizeBytes,
		lg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(
		authPostgres.NewRepository(gormDB),
		tokenGen,
		config.Security.BCryptCost,
		lg,
	)

	userService := user.NewService(
		userPostgres.NewUserRepository(gormDB),
		fileStore,
		config.Security.BCryptCost,
		lg,
	)
	directoryService := directory.NewService(directoryPostgres.NewDirectoryRepository(gormDB), lg)
	eventService := event.NewService(eventPostgres.NewEventRepository(gormDB), bus, lg)
	schemaService := formschema.NewService(formschemaPostgres.NewSchemaRepository(gormDB), lg)
	inscriptionService := inscription.NewService(
		inscriptionPostgres.NewInscriptionRepository(gormDB),
		eventService,
		schemaService,
		fileStore,
		bus,
		lg,
	)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), lg)
	reportService := report.NewService(reportPostgres.NewReportRepository(db), lg)

	notification.NewSubscriber(notificationService, lg).Register(bus)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Directory:    directory.NewHandler(directoryService),
		Event:        event.NewHandler(eventService),
		FormSchema:   formschema.NewHandler(schemaService),
		Inscription:  inscription.NewHandler(inscriptionService),
		Notification: notification.NewHandler(notificationService),
		Report:       report.NewHandler(reportService),
	}

	return rest.NewRouter(handlers, rest.RouterConfig{
		DB:             db.DB,
		Logger:         lg,
		AllowedOrigins: config.Server.AllowedOrigins,
		UploadsDir:     fileStore.Dir(),
	}), nil
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
