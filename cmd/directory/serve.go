package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/internal/command"
	"github.com/holidayhub/directory/internal/handler"
	"github.com/holidayhub/directory/internal/query"
	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/shared/events"
	redisClient "github.com/holidayhub/directory/shared/redis"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Database connection (write store)
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.CreateSchema(ctx, db); err != nil {
			return err
		}

		// Redis connection (read model cache + event streaming)
		redis, err := redisClient.NewClient(redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redis.Close()

		// --- CQRS wiring ---
		publisher := events.NewPublisher(redis.Client, cfg.Events.Stream)

		accountWrites := repository.NewAccountWriteRepository(db)
		accountReads := repository.NewAccountReadRepository(db, redis.Client, cfg.Redis.CacheTTL, log)
		holidayWrites := repository.NewHolidayWriteRepository(db)
		holidayReads := repository.NewHolidayReadRepository(db)

		router := handler.NewRouter(handler.Services{
			AccountCommands: command.NewAccountCommandService(accountWrites, accountReads, publisher, log),
			AccountQueries:  query.NewAccountQueryService(accountReads),
			HolidayCommands: command.NewHolidayCommandService(holidayWrites, holidayReads, accountReads, publisher, log),
			HolidayQueries:  query.NewHolidayQueryService(holidayReads, accountReads),
		}, log)

		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			log.WithField("port", cfg.Server.Port).Info("directory service starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
