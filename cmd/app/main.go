package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"shipping/cmd"
	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/consignmentrepo"
	"shipping/internal/adapters/out/pricingcfg"
	"shipping/internal/adapters/out/rediscache"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogFile)

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	viewCache := rediscache.NewRedisViewCache(redisClient)

	pricingSource, err := pricingcfg.NewStaticSource()
	if err != nil {
		log.Fatalf("Invalid pricing configuration: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, viewCache, pricingSource, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:      goDotEnvVariable("REDIS_ADDR"),
		AdminJWTSecret: goDotEnvVariable("ADMIN_JWT_SECRET"),
		LogFile:        goDotEnvVariable("LOG_FILE"),
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

// newLogger writes structured JSON logs to stdout, and additionally to a
// size-rotated file when LOG_FILE is set.
func newLogger(logFile string) *slog.Logger {
	var out io.Writer = os.Stdout
	if logFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	return slog.New(slog.NewJSONHandler(out, nil))
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&consignmentrepo.ConsignmentDTO{},
		&consignmentrepo.PackageDTO{},
		&consignmentrepo.TimelineEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Validator = httpadapter.NewRequestValidator()

	registry := prometheus.NewRegistry()
	metrics := httpadapter.NewHTTPMetrics(registry)
	e.Use(metrics.Middleware())

	server := httpadapter.NewServer(
		app.CreateCreateConsignmentCommandHandler(),
		app.CreateUpdateConsignmentStatusCommandHandler(),
		app.CreateQuotePriceQueryHandler(),
		app.CreateTrackConsignmentQueryHandler(),
		app.CreateListRecentConsignmentsQueryHandler(),
	)
	server.RegisterRoutes(e, httpadapter.AdminAuthMiddleware([]byte(configs.AdminJWTSecret)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", httpadapter.MetricsHandler(registry))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
