package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studynotes-be/internal/bootstrap"
	"studynotes-be/internal/config"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/pkg/mailer"
	"studynotes-be/internal/repository/memory"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/internal/server"
	"studynotes-be/internal/tracer"
	"studynotes-be/pkg/database"
	pktNats "studynotes-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sysLogger := logger.NewZapLogger(logger.Options{
		FilePath:   cfg.App.LogFilePath,
		Production: cfg.IsProduction(),
		Level:      cfg.App.LogLevel,
	})
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Store
	deps := bootstrap.Dependencies{
		Logger:      sysLogger,
		AuditLogger: logger.NewIsolatedLogger(cfg.App.EventLogFilePath),
	}

	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		sysLogger.Warn("MAIN", "using in-memory store, data is lost on restart", nil)
		deps.UowFactory = memory.NewRepositoryFactory(memory.NewStore())
	default:
		gormDB, err := database.NewGormDB(database.GormConfig{
			DSN:             cfg.Database.Connection,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogQueries:      cfg.Database.LogQueries,
		})
		if err != nil {
			log.Fatalf("unable to connect to database: %v", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("unable to access sql.DB: %v", err)
		}
		defer sqlDB.Close()

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, sqlDB, database.CommandUp); err != nil {
				log.Fatalf("migration failed: %v", err)
			}
		}
		deps.UowFactory = unitofwork.NewRepositoryFactory(gormDB, cfg.Database.QueryTimeout)
	}

	// 4. Optional infrastructure
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			sysLogger.Warn("MAIN", "redis unreachable, continuing without it", map[string]interface{}{"error": err})
			rdb.Close()
		} else {
			deps.Redis = rdb
			defer rdb.Close()
		}
	}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("MAIN", "NATS unavailable, events stay in-process", map[string]interface{}{"error": err})
		} else {
			deps.Exporter = natsPub
			defer natsPub.Close()
		}
	}

	if cfg.SMTP.Enabled() {
		deps.Mailer = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 5. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, deps)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer container.Close()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "event consumer failed to start", map[string]interface{}{"error": err})
	}

	// 6. Run Server
	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			sysLogger.Error("MAIN", "server stopped", map[string]interface{}{"error": err})
		}
	case <-ctx.Done():
		sysLogger.Info("MAIN", "shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("MAIN", "graceful shutdown failed", map[string]interface{}{"error": err})
		}
	}
}
