package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school_cms/internal/handlers"
	"school_cms/internal/logger"
	"school_cms/internal/repository"
	"school_cms/internal/repository/db"
	"school_cms/internal/server"
	"school_cms/internal/service"

	"github.com/spf13/viper"
)

const defaultReapInterval = 1 * time.Hour

// @title           School CMS API
// @version         1.0
// @description     Promotional school website backend with a session-based admin panel.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, log)
	apiHandler := handlers.NewHandler(services, log)

	// seed the bootstrap admin and the default site settings
	if err := seed(services, log); err != nil {
		log.Fatalw("failed to seed initial data", "err", err)
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// purge expired sessions in the background; lookups already treat
	// expired rows as absent, the reaper only reclaims storage
	go services.Reaper.Run(ctx, reapInterval())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "school_cms.db")
		dbPath = "school_cms.db"
	}
	return db.InitDB(dbPath)
}

// seed provisions the bootstrap admin account and the default site
// settings. Both are no-ops when the data already exists.
func seed(services *service.Service, log *logger.Logger) error {
	username := viper.GetString("admin.username")
	password := viper.GetString("admin.password")
	if username == "" || password == "" {
		log.Infow("admin credentials not configured; skipping admin bootstrap")
	} else if err := services.Authorization.EnsureAdmin(username, password); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return services.Settings.EnsureDefaults(ctx)
}

func reapInterval() time.Duration {
	if d := viper.GetDuration("sessions.reap_interval"); d > 0 {
		return d
	}
	return defaultReapInterval
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
