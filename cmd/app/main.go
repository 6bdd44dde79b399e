package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/dedupstore"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/push"
	"dispatch/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	notifier, err := push.NewKafkaNotifier([]string{configs.KafkaHost}, configs.KafkaNotificationsTopic)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}
	defer notifier.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, logger)

	jobManager := jobs.NewJobManager(
		app.CreateSweepStaleOrdersCommandHandler(),
		app.CreateRemindLongShiftsCommandHandler(),
		jobs.Settings{
			StaleOrderAge:          configs.StaleOrderAge,
			StaleOrderSchedule:     configs.StaleOrderSchedule,
			ShiftReminderThreshold: configs.ShiftReminderThreshold,
			ShiftReminderTTL:       configs.ShiftReminderTTL,
			ShiftReminderSchedule:  configs.ShiftReminderSchedule,
		},
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		JobToken:                goDotEnvVariable("JOB_TOKEN"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
		StaleOrderAge:           goDotEnvDuration("STALE_ORDER_AGE", 168*time.Hour),
		StaleOrderSchedule:      goDotEnvVariable("STALE_ORDER_SCHEDULE"),
		ShiftReminderThreshold:  goDotEnvDuration("SHIFT_REMINDER_THRESHOLD", 10*time.Hour),
		ShiftReminderTTL:        goDotEnvDuration("SHIFT_REMINDER_TTL", time.Hour),
		ShiftReminderSchedule:   goDotEnvVariable("SHIFT_REMINDER_SCHEDULE"),
		ReturnWindow:            goDotEnvDuration("RETURN_WINDOW", 72*time.Hour),
		BatchConcurrency:        goDotEnvInt("BATCH_CONCURRENCY", 8),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return d
}

func goDotEnvInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return n
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&historyrepo.StatusHistoryDTO{},
		&dedupstore.DedupKeyDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server := httpin.NewServer(
		httpin.Handlers{
			CreateOrder:     app.CreateCreateOrderCommandHandler(),
			AssignOrder:     app.CreateAssignOrderCommandHandler(),
			UnassignOrder:   app.CreateUnassignOrderCommandHandler(),
			AdvanceOrder:    app.CreateAdvanceOrderCommandHandler(),
			CancelOrder:     app.CreateCancelOrderCommandHandler(),
			ReturnOrder:     app.CreateReturnOrderCommandHandler(),
			DeleteOrder:     app.CreateDeleteOrderCommandHandler(),
			ArchiveOrder:    app.CreateArchiveOrderCommandHandler(),
			Batch:           app.CreateBatchCommandHandler(),
			SweepStale:      app.CreateSweepStaleOrdersCommandHandler(),
			RemindShifts:    app.CreateRemindLongShiftsCommandHandler(),
			GetActiveOrders: app.CreateGetActiveOrdersQueryHandler(),
			GetOrderHistory: app.CreateGetOrderHistoryQueryHandler(),
		},
		httpin.Settings{
			JobToken:               configs.JobToken,
			StaleOrderAge:          configs.StaleOrderAge,
			ShiftReminderThreshold: configs.ShiftReminderThreshold,
			ShiftReminderTTL:       configs.ShiftReminderTTL,
		},
	)

	e := server.NewEcho()
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
