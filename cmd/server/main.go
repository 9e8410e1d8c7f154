package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/bootstrap"
	"github.com/harborline/stafftrack/internal/config"
	"github.com/harborline/stafftrack/internal/modules/handler"
	"github.com/harborline/stafftrack/internal/router"
	"github.com/harborline/stafftrack/internal/telemetry"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)

	// Setup OpenTelemetry tracing
	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		DB:                  db,
		Log:                 log,
		StaffHandler:        do.MustInvoke[*handler.StaffHandler](inj),
		ContractHandler:     do.MustInvoke[*handler.ContractHandler](inj),
		DeliverableHandler:  do.MustInvoke[*handler.DeliverableHandler](inj),
		AssignmentHandler:   do.MustInvoke[*handler.AssignmentHandler](inj),
		TaskHandler:         do.MustInvoke[*handler.TaskHandler](inj),
		TimeEntryHandler:    do.MustInvoke[*handler.TimeEntryHandler](inj),
		StatusUpdateHandler: do.MustInvoke[*handler.StatusUpdateHandler](inj),
		ReportHandler:       do.MustInvoke[*handler.ReportHandler](inj),
		ExportHandler:       do.MustInvoke[*handler.ExportHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
