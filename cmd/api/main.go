package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	// Application Layer
	appService "medreminder/internal/application/service"

	// Domain Layer
	"medreminder/internal/domain/constant"

	// Infrastructure Layer
	"medreminder/internal/infrastructure/database"
	lineClient "medreminder/internal/infrastructure/line"
	"medreminder/internal/infrastructure/notify"
	"medreminder/internal/infrastructure/scheduler"
	"medreminder/internal/infrastructure/telegram"
	"medreminder/internal/infrastructure/webpush"

	// Interfaces Layer
	"medreminder/internal/interfaces/api/handler"
	"medreminder/internal/interfaces/api/router"

	// Packages
	"medreminder/internal/pkg/config"
	appLogger "medreminder/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := appLogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	if err := run(cfg, appLog); err != nil {
		appLog.Error("Service stopped with error", err)
		_ = appLog.Sync()
		os.Exit(1)
	}
	appLog.Info("Graceful shutdown complete.")
}

func run(cfg *config.Config, appLog appLogger.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Infrastructure ---
	db, err := database.Open(database.Config{Driver: cfg.DBDriver, URL: cfg.DatabaseURL, Logger: appLog})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Error("Error closing database", err)
		} else {
			appLog.Info("Database connection closed.")
		}
	}()

	scheduleRepo := database.NewScheduleRepository(db)
	confirmationRepo := database.NewConfirmationRepository(db)
	userRepo := database.NewUserRepository(db)
	appLog.Info("Database and repositories initialized.")

	notifier := notify.NewRouter(appLog)

	var pushSvc *webpush.Service
	if cfg.VAPIDPublicKey != "" {
		pushSvc = webpush.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber, &http.Client{Timeout: cfg.NotifyTimeout})
		notifier.Register(constant.EndpointWebPush, pushSvc)
	} else {
		appLog.Warn("VAPID keys not set, web push notifications disabled")
	}

	var line *lineClient.Client
	if cfg.LineChannelSecret != "" {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, cfg.DefaultSnoozeMinutes, appLog)
		if err != nil {
			return err
		}
		notifier.Register(constant.EndpointLine, line)
	} else {
		appLog.Warn("LINE credentials not set, LINE notifications disabled")
	}

	if cfg.TelegramToken != "" {
		tg, err := telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			return err
		}
		notifier.Register(constant.EndpointTelegram, tg)
	}

	// --- Application Services ---
	userSvc := appService.NewUserService(userRepo, notifier, appLog)
	scheduleSvc := appService.NewScheduleService(scheduleRepo, appLog)
	confirmationSvc := appService.NewConfirmationService(confirmationRepo, appService.ConfirmationOptions{
		DefaultSnoozeMinutes: cfg.DefaultSnoozeMinutes,
		Location:             loc,
	}, appLog)
	reminders := appService.NewReminderScheduler(
		scheduler.NewCron(loc, appLog),
		scheduleRepo, confirmationRepo, userRepo, notifier,
		appService.SchedulerOptions{
			Spec:          cfg.TickSpec(),
			Location:      loc,
			NotifyTimeout: cfg.NotifyTimeout,
		},
		appLog,
	)
	appLog.Info("Application services initialized.")

	// --- API Handlers ---
	var vapidPublicKey string
	if pushSvc != nil {
		vapidPublicKey = pushSvc.VAPIDPublicKey()
	}
	routerCfg := &router.Config{
		ScheduleHandler:     handler.NewScheduleHandler(scheduleSvc, appLog),
		ConfirmationHandler: handler.NewConfirmationHandler(confirmationSvc, appLog),
		EndpointHandler:     handler.NewEndpointHandler(userSvc, vapidPublicKey, appLog),
		JWTSecret:           []byte(cfg.JWTSecret),
		Logger:              appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, userSvc, scheduleSvc, confirmationSvc, appLog)
	}

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(routerCfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := reminders.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLog.Info("Shutting down gracefully", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// No tick may run once the database closes.
		var errs []error
		if err := reminders.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
