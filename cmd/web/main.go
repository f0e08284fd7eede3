package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/internal/service"
	"github.com/DanRulev/flashquiz/internal/storage"
	"github.com/DanRulev/flashquiz/internal/web"
	"github.com/DanRulev/flashquiz/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("web", pflag.ExitOnError)
	fs.String("port", "", "port to listen on")
	fs.String("order", "", "choice order: shuffle or sorted")
	fs.String("store", "", "session store: memory, postgres or redis")
	fs.String("config", "", "path to a config file")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Init(fs)
	if err != nil {
		log.Fatal("failed load config " + err.Error())
		return
	}

	logger := logger.Setup(cfg.Env)
	defer logger.Sync()

	order, err := quiz.ParseChoiceOrder(cfg.Quiz.ChoiceOrder)
	if err != nil {
		logger.Fatal("invalid choice order", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.NewSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed init session store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close session store", zap.Error(err))
		}
	}()

	engine := quiz.NewEngine(quiz.NewGenerator(order, nil))
	services := service.InitServices(engine, store, logger)

	app := web.NewApp(cfg.Web, services, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Web.Port))
		errCh <- app.Listen(fmt.Sprintf(":%v", cfg.Web.Port))
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("failed graceful shutdown", zap.Error(err))
		}
	}
}
