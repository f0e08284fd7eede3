package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	CallbackAnswerPrefix = "quiz:"
	ButtonStop           = "⏹ Stop"
	ButtonSkip           = "⏭ Skip"
)

const helpText = `📚 Available commands:
/start - show the welcome message
/help - this message
/stop - end the current quiz and show your score
/results - show the score of your last quiz

📄 Send me an .xlsx or .csv file with 'Question' and 'Answer' columns to start a quiz.
Answer with the buttons under each question or type the number of your choice.`

func (t *TelegramAPI) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		t.handleStartCommand(message)
	case "help":
		t.handleHelpCommand(message)
	case "stop":
		t.quiz.answer(message.Chat.ID, stopInput)
	case "results":
		t.quiz.sendResults(message.Chat.ID)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help")
		sendMessage(t.bot, t.log, msg)
	}
}

func (t *TelegramAPI) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := "🤖 Hi! I am a flashcard quiz bot.\n\n" +
		"✨ What I can do:\n" +
		"• 📄 Read your flashcards from a spreadsheet\n" +
		"• 🧠 Ask them as multiple choice questions\n" +
		"• 📊 Show your score and the answers you missed\n\n" +
		"Send me an .xlsx or .csv file with 'Question' and 'Answer' columns to begin!"

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	sendMessage(t.bot, t.log, msg)
}

func (t *TelegramAPI) handleHelpCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	sendMessage(t.bot, t.log, msg)
}

func (t *TelegramAPI) handleMessage(message *tgbotapi.Message) {
	if message.Chat == nil {
		t.log.Warn("message without chat", zap.Int("message", message.MessageID))
		return
	}

	switch {
	case message.Document != nil:
		t.quiz.startFromDocument(message)
	case strings.TrimSpace(message.Text) != "":
		t.quiz.answer(message.Chat.ID, message.Text)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "I did not understand that. Use /help")
		sendMessage(t.bot, t.log, msg)
	}
}

func (t *TelegramAPI) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(query.ID, "")
	callback.ShowAlert = false
	if _, err := t.bot.Request(callback); err != nil {
		t.log.Warn("failed to answer callback", zap.Error(err))
	}

	data := query.Data

	switch {
	case strings.HasPrefix(data, CallbackAnswerPrefix):
		if query.Message == nil || query.Message.Chat == nil {
			t.log.Warn("callback without message", zap.String("callback", query.ID))
			return
		}
		t.quiz.handleAnswerCallback(query)

	default:
		t.log.Warn("unknown callback data", zap.String("data", data))
	}
}
