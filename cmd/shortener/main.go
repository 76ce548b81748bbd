package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atarasenko/shortlink/internal/app/server"
	"github.com/atarasenko/shortlink/internal/app/service"
	"github.com/atarasenko/shortlink/internal/config"
	"github.com/atarasenko/shortlink/internal/logger"
	"github.com/atarasenko/shortlink/internal/repository"
	"github.com/atarasenko/shortlink/internal/storage"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log
	defer func() {
		_ = zapLogger.Sync()
	}()

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var s service.Storage

	switch {
	case options.DatabaseDSN != "":
		zapLogger.Info("using postgres", zap.String("dsn", options.DatabaseDSN))
		db := repository.InitDB(options.DatabaseDSN, zapLogger)
		defer db.Close()
		s = repository.CreateLinkRepository(db, zapLogger)
	case options.RedisAddr != "":
		zapLogger.Info("using redis", zap.String("addr", options.RedisAddr))
		client := repository.InitRedis(options.RedisAddr, zapLogger)
		defer client.Close()
		s = repository.CreateRedisRepository(client, zapLogger)
	case options.FilePath != "":
		zapLogger.Info("using file storage", zap.String("path", options.FilePath))
		fs, err := storage.NewFileStorage(options.FilePath, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to open file storage", zap.Error(err))
		}
		defer fs.Close()
		s = fs
	default:
		zapLogger.Info("using in memory storage")
		ms, err := storage.CreateMemoryStorage()
		if err != nil {
			zapLogger.Fatal("failed to create memory storage", zap.Error(err))
		}
		s = ms
	}

	urlService := service.NewURL(s, service.NewRandomIDGenerator(), zapLogger)
	r := server.Init(options.BaseURL, zapLogger, urlService)

	srv := &http.Server{
		Addr:    options.Addr,
		Handler: r,
	}

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(options.TLSHost),
		}
		srv.Addr = ":443"
		srv.TLSConfig = manager.TLSConfig()
	}

	go func() {
		zapLogger.Info("Server is running", zap.String("addr", srv.Addr))

		var err error
		if options.EnableHTTPS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
}
