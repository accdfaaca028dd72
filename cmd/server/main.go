package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biztime/config"
	"biztime/db"
	"biztime/db/bolt"
	"biztime/db/mongo"
	"biztime/db/postgres"
	"biztime/logger"
	"biztime/metrics"
	"biztime/repository"
	"biztime/routes"
	"biztime/utils"
)

const (
	readTimeout       = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 60 * time.Second // PDF rendering runs inside the request
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	log := logger.New(os.Stdout)

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config from .env, config file and environment
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var (
		conn        db.DB
		companyRepo repository.CompanyRepository
		invoiceRepo repository.InvoiceRepository
	)

	switch cfg.DBType {
	case config.DBTypePostgres:
		// Run migrations (for Postgres)
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath); err != nil {
			log.Error(ctx, "migrations failed", logger.Error(err))
			os.Exit(1)
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			log.Error(ctx, "postgres connect failed", logger.Error(err))
			os.Exit(1)
		}
		conn = pg
		companyRepo = repository.NewPostgresCompanyRepo(pg.Conn)
		invoiceRepo = repository.NewPostgresInvoiceRepo(pg.Conn)

	case config.DBTypeMongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			log.Error(ctx, "mongo connect failed", logger.Error(err))
			os.Exit(1)
		}
		database := mg.Client.Database(cfg.MongoDatabase)
		if err := repository.InitMongoIndexes(ctx, database); err != nil {
			log.Error(ctx, "mongo indexes failed", logger.Error(err))
			os.Exit(1)
		}
		conn = mg
		companyRepo = repository.NewMongoCompanyRepo(database)
		invoiceRepo = repository.NewMongoInvoiceRepo(database)

	case config.DBTypeBolt:
		bt := bolt.NewBoltDB(cfg.BoltPath)
		if err := bt.Connect(); err != nil {
			log.Error(ctx, "bolt open failed", logger.Error(err))
			os.Exit(1)
		}
		if err := repository.InitBoltBuckets(bt.Conn); err != nil {
			log.Error(ctx, "bolt buckets failed", logger.Error(err))
			os.Exit(1)
		}
		conn = bt
		companyRepo = repository.NewBoltCompanyRepo(bt.Conn)
		invoiceRepo = repository.NewBoltInvoiceRepo(bt.Conn)
	}
	defer conn.Disconnect()

	deps := routes.Dependencies{
		DB:        conn,
		Companies: companyRepo,
		Invoices:  invoiceRepo,
		Renderer:  &utils.ChromePDFRenderer{TemplateDir: cfg.TemplateDir},
	}
	if cfg.UploadsEnabled() {
		store, err := utils.NewObjectStore(ctx, utils.ObjectStoreConfig{
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			log.Error(ctx, "object store setup failed", logger.Error(err))
			os.Exit(1)
		}
		deps.Store = store
	}

	app := routes.NewApp(cfg, log, metrics.New(), deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		log.Info(ctx, "server running", logger.String("port", cfg.Port), logger.String("db_type", cfg.DBType))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
