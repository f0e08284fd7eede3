package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanRulev/flashquiz/internal/bot"
	"github.com/DanRulev/flashquiz/internal/client"
	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/internal/service"
	"github.com/DanRulev/flashquiz/internal/storage"
	"github.com/DanRulev/flashquiz/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("bot", pflag.ExitOnError)
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

	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

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
	clients := client.InitClients(int64(cfg.Web.UploadMaxSize))

	handler, err := bot.NewTelegramAPI(cfg.BotToken, cfg.Env, services, clients, int64(cfg.Web.UploadMaxSize), logger)
	if err != nil {
		logger.Fatal(err.Error())
		return
	}

	handler.Start(ctx)
}
