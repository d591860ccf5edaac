package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gitlab.com/codelab-2025.net/internal/adapter/judge"
	"gitlab.com/codelab-2025.net/internal/adapter/logging"
	"gitlab.com/codelab-2025.net/internal/adapter/mongo/exercisecatalog"
	"gitlab.com/codelab-2025.net/internal/adapter/postgres/submissionrepo"
	"gitlab.com/codelab-2025.net/internal/adapter/redis/progressport"
	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/services/execution"
	"gitlab.com/codelab-2025.net/internal/core/services/runtime"
	http2 "gitlab.com/codelab-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()

	logger := logging.NewZapLogger(sysCfg.DebugMode)
	defer logger.Sync()
	logger.Info("Starting code execution service")

	clock := primary.RealClock{}

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	mongoClient, mongoDb, err := setupMongo(sysCfg.MongoConfig)
	if err != nil {
		panic(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()

	// SECONDARY PORTS
	exercisePort := exercisecatalog.NewExerciseCatalog(mongoDb, logger)
	if err := exercisePort.EnsureIndexes(context.Background()); err != nil {
		logger.Error("Failed to ensure catalog indexes", "error", err)
	}
	submissionPort := submissionrepo.NewSubmissionRepository(db, logger)
	progressPort := progressport.NewProgressTracker(redisClient, logger)
	judgePort := judge.NewClient(sysCfg.JudgeConfig, clock, logger)

	//services
	catalogSvc := runtime.NewCatalogService(judgePort, clock, sysCfg.JudgeConfig.RuntimeCacheTTL, logger)
	executionSvc := execution.NewExecutionService(
		exercisePort,
		submissionPort,
		progressPort,
		judgePort,
		catalogSvc,
		sysCfg.GradingConfig,
		sysCfg.JudgeConfig,
		clock,
		logger,
	)
	serviceProvider := http2.NewServiceProvider(executionSvc, catalogSvc)

	//server
	httpServer := http2.NewServer(8082, "codeExecution", *serviceProvider, sysCfg.JwtConfig, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// setupMongo sets up the MongoDB connection holding the lesson catalog
func setupMongo(cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	return client, client.Database(cfg.Database), nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
