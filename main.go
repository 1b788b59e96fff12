package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"avolkov/resume-api/api"
	"avolkov/resume-api/config"
	"avolkov/resume-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	if config.PurgeExpiredOnly() {
		n, err := a.Sessions.PurgeExpired()
		if err != nil {
			zap.L().Fatal("Failed to purge expired sessions", zap.Error(err))
		}

		zap.L().Info("Purged expired sessions", zap.Int64("count", n))
		return
	}

	reaper := service.NewSessionReaper(a.Sessions, viper.GetDuration("session.reap_every"))
	reaper.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler:      a.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zap.L().Info("Shutting down")

	reaper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
