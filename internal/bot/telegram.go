package bot

import (
	"context"
	"strconv"

	"github.com/DanRulev/flashquiz/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -source=telegram.go -destination=mock/telegram_mock.go

type QuizSI interface {
	StartSession(ctx context.Context, id string, cards []models.Flashcard) (models.Question, error)
	CurrentQuestion(ctx context.Context, id string) (models.Question, error)
	SubmitAnswer(ctx context.Context, id, input string) (models.AnswerOutcome, models.SessionStatus, error)
	Results(ctx context.Context, id string) (models.ResultSummary, error)
}

type FileDownloaderI interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type TelegramAPI struct {
	api  *tgbotapi.BotAPI
	bot  BotSender
	quiz *QuizT
	log  *zap.Logger
}

func NewTelegramAPI(botToken, env string, service QuizSI, files FileDownloaderI, maxFileSize int64, log *zap.Logger) (*TelegramAPI, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}

	if env == "development" {
		bot.Debug = true
	} else {
		bot.Debug = false
	}

	return &TelegramAPI{
		api:  bot,
		bot:  bot,
		quiz: NewQuizTAPI(bot, service, files, maxFileSize, log),
		log:  log,
	}, nil
}

// Start handles updates until ctx is done.
func (t *TelegramAPI) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()

	t.log.Info("bot started", zap.String("username", t.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(update)
		}
	}
}

func (t *TelegramAPI) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			t.handleCommand(update.Message)
		} else {
			t.handleMessage(update.Message)
		}
		return
	}

	if update.CallbackQuery != nil {
		t.handleCallbackQuery(update.CallbackQuery)
	}
}

func sessionKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func sendMessage(bot BotSender, log *zap.Logger, msg tgbotapi.Chattable) (tgbotapi.Message, bool) {
	sentMsg, err := bot.Send(msg)
	if err != nil {
		log.Error("failed to send message", zap.Error(err))
		return tgbotapi.Message{}, false
	}
	if sentMsg.Chat != nil {
		log.Debug("sent message", zap.Int64("chat", sentMsg.Chat.ID))
	}
	return sentMsg, true
}
