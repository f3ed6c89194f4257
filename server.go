// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"
	"topup-server/commons"
	"topup-server/db"
	"topup-server/handlers"
	"topup-server/metrics"
	"topup-server/pricing"
	"topup-server/purchase"
	"topup-server/rabbitmq"
	"topup-server/routes"
	"topup-server/scheduler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	commons.Logger.SetLevel(commons.ParseLogLevel(commons.GetEnv("LOG_LEVEL")))

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
		commons.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(commons.GetEnv("CORS_ALLOW_ORIGINS", "*"), ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	metrics.PrometheusInit()
	e.Use(metrics.TrackMetrics())

	commons.InitCarriers()

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}

	catalog := pricing.DefaultCatalog()
	mock := purchase.NewMockService(
		catalog,
		commons.GetEnvMillis("MOCK_AIRTIME_DELAY_MS", purchase.DefaultAirtimeDelay),
		commons.GetEnvMillis("MOCK_BUNDLE_DELAY_MS", purchase.DefaultBundleDelay),
		purchase.DefaultBalanceDelay,
	)
	sessions := db.NewSessionStore(db.Conn)
	transactions := db.NewTransactionStore(db.Conn)

	var publisher purchase.Publisher = rabbitmq.NoopPublisher{}
	if amqpPublisher, err := rabbitmq.NewPublisherFromEnv(); err == nil {
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		commons.Logger.Warn("RABBITMQ_AMQP_URL not set, purchase events will not be published")
	}

	h := &handlers.Handler{
		DB:           db.Conn,
		Carriers:     commons.CarrierIndex,
		Catalog:      catalog,
		Sessions:     sessions,
		Transactions: transactions,
		Submitter: purchase.NewSubmitter(purchase.SubmitterConfig{
			Carriers:  commons.CarrierIndex,
			Catalog:   catalog,
			Service:   mock,
			Savings:   sessions,
			Recorder:  transactions,
			Publisher: publisher,
		}),
		Balances:   mock,
		SessionTTL: time.Duration(commons.GetEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}
	routes.RegisterRoutes(e, h)

	purger := scheduler.NewSessionScheduler(sessions, commons.GetEnv("SESSION_PURGE_SCHEDULE", scheduler.DefaultPurgeSpec))
	if err := purger.Start(); err != nil {
		e.Logger.Fatal(err)
	}
	defer purger.Stop()

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}

	go func() {
		if err := e.Start(port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error("Graceful shutdown failed: ", err)
	}
}
