package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal/core/events"
	eventPostgres "github.com/mfauzanap/event-registration/internal/event/postgres"
	"github.com/mfauzanap/event-registration/internal/notification"
	notificationPostgres "github.com/mfauzanap/event-registration/internal/notification/postgres"
	"github.com/mfauzanap/event-registration/internal/sweeper"
	"github.com/mfauzanap/event-registration/pkg/logger"
)

const defaultSweepSchedule = "0 6 * * *"

var sweeperCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Start the status sweep scheduler",
	Long:  `Recompute event statuses and send reminder notifications on a cron schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSweeper()
	},
}

func startSweeper() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open gorm over pgx: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewEventBus(lg)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), lg)
	notification.NewSubscriber(notificationService, lg).Register(bus)

	windows := sweeper.Windows{
		EventReminderFrom:    config.Sweeper.EventReminderFrom,
		EventReminderTo:      config.Sweeper.EventReminderTo,
		DeadlineReminderFrom: config.Sweeper.DeadlineReminderFrom,
		DeadlineReminderTo:   config.Sweeper.DeadlineReminderTo,
	}
	svc := sweeper.NewService(eventPostgres.NewEventRepository(gormDB), bus, notificationService, windows, lg)

	schedule := config.Sweeper.Schedule
	if schedule == "" {
		schedule = defaultSweepSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := svc.Run(context.Background()); err != nil {
			lg.Error("sweep run failed", "error", err)
		}
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sweep schedule %q: %v\n", schedule, err)
		os.Exit(1)
	}

	lg.Info("sweeper started", "schedule", schedule)
	c.Start()

	// Run one sweep immediately so a restart never skips a day.
	if err := svc.Run(context.Background()); err != nil {
		lg.Error("initial sweep failed", "error", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	lg.Info("received signal, stopping sweeper", "signal", sig.String())

	ctx := c.Stop()
	<-ctx.Done()
	lg.Info("sweeper stopped")
}
