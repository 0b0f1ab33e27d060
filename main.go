// main.go
package main

import (
	"log"
	"time"

	"court-booking/cmd"
	"court-booking/internal/data/repository"
	"court-booking/internal/scheduler"
	"court-booking/internal/usecase"
	"court-booking/internal/wire"
	"court-booking/pkg/database"
	"court-booking/pkg/mq"
	"court-booking/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const sessionRetention = 7 * 24 * time.Hour

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	loc, err := config.App.Location()
	if err != nil {
		logger.Fatal("Invalid APP_TIMEZONE", zap.String("timezone", config.App.Timezone), zap.Error(err))
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", loc.String()),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Booking events go to RabbitMQ when configured
	var events usecase.EventPublisher = usecase.NopPublisher{}
	if config.Events.Enabled() {
		publisher, err := mq.NewPublisher(config.Events.AMQPURL, config.Events.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
		logger.Info("Booking events enabled", zap.String("exchange", config.Events.Exchange))
	}

	// Initialize all repositories and services
	repos := repository.NewRepository(db, logger)
	services := usecase.NewService(repos, config, events, loc, logger)

	if config.Scheduler.Enabled() {
		sched, err := startScheduler(config.Scheduler, repos, services, loc, logger)
		if err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	// Wire all dependencies
	app := wire.Wiring(repos, services, db, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

func startScheduler(
	config utils.SchedulerConfig,
	repos *repository.Repository,
	services *usecase.Service,
	loc *time.Location,
	logger *zap.Logger,
) (*scheduler.Scheduler, error) {
	sched, err := scheduler.New(logger, gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	if config.CompletionSweepCron != "" {
		if err := scheduler.RegisterCompletionSweep(sched, config.CompletionSweepCron, services.Booking); err != nil {
			sched.Stop()
			return nil, err
		}
	}
	if config.SessionCleanupCron != "" {
		if err := scheduler.RegisterSessionCleanup(sched, config.SessionCleanupCron, sessionRetention, repos.Session); err != nil {
			sched.Stop()
			return nil, err
		}
	}

	sched.Start()
	return sched, nil
}
