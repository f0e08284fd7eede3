package bot

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DanRulev/flashquiz/internal/flashcards"
	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/internal/report"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const stopInput = "stop"

const (
	MsgNoSession     = "❗ No quiz in progress. Send me an .xlsx or .csv file to start one."
	MsgQuizOver      = "🏁 This quiz is over. Send /results to see your score or a new file to start again."
	MsgNoResults     = "❗ There are no results yet. Finish a quiz first."
	MsgFileType      = "❗ Please send an .xlsx or .csv file with 'Question' and 'Answer' columns."
	MsgFileTooLarge  = "❗ This file is too large."
	MsgSomethingWent = "❌ Something went wrong. Please try again later."
	MsgAnswered      = "⚠️ This question was already answered."
)

type QuizT struct {
	bot         BotSender
	service     QuizSI
	files       FileDownloaderI
	maxFileSize int64
	log         *zap.Logger

	mu sync.Mutex
	// keyboards holds the message id of the last question sent to each chat
	// while its answer buttons are still shown.
	keyboards map[int64]int
}

func NewQuizTAPI(bot BotSender, service QuizSI, files FileDownloaderI, maxFileSize int64, log *zap.Logger) *QuizT {
	return &QuizT{
		bot:         bot,
		service:     service,
		files:       files,
		maxFileSize: maxFileSize,
		log:         log,
		keyboards:   make(map[int64]int),
	}
}

func (t *QuizT) send(chatID int64, text string) {
	sendMessage(t.bot, t.log, tgbotapi.NewMessage(chatID, text))
}

func (t *QuizT) startFromDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	format, err := flashcards.FormatFromName(doc.FileName)
	if err != nil {
		t.send(chatID, MsgFileType)
		return
	}

	if t.maxFileSize > 0 && int64(doc.FileSize) > t.maxFileSize {
		t.send(chatID, MsgFileTooLarge)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := t.bot.GetFileDirectURL(doc.FileID)
	if err != nil {
		t.log.Error("failed to get file url", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	data, err := t.files.Download(ctx, url)
	if err != nil {
		t.log.Error("failed to download file", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	cards, err := flashcards.Load(bytes.NewReader(data), format, doc.FileName)
	if err != nil {
		t.send(chatID, "❌ "+err.Error())
		return
	}

	q, err := t.service.StartSession(ctx, sessionKey(chatID), cards)
	if err != nil && !errors.Is(err, quiz.ErrInsufficientDistractors) {
		if errors.Is(err, quiz.ErrEmptySet) {
			t.send(chatID, "❌ "+doc.FileName+" has no flashcards.")
			return
		}
		t.log.Error("failed to start session", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	t.dropKeyboard(chatID)
	t.send(chatID, "🧠 Loaded "+strconv.Itoa(len(cards))+" flashcards. Let's go!")
	t.sendQuestion(chatID, q, err)
}

// sendQuestion shows a question with one button per choice. A question
// without choices gets a single skip button. Every button carries the
// question number so a press can be matched to its turn.
func (t *QuizT) sendQuestion(chatID int64, q models.Question, qErr error) {
	text := report.QuestionText(q)

	var rows [][]tgbotapi.InlineKeyboardButton
	if qErr != nil {
		text += "\n" + report.MsgNotEnoughAnswers
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ButtonSkip, answerData(q.Number, "")),
		))
	} else {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Choices))
		for i := range q.Choices {
			n := strconv.Itoa(i + 1)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(n, answerData(q.Number, n)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(ButtonStop, answerData(q.Number, stopInput)),
	))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = &keyboard

	sent, ok := sendMessage(t.bot, t.log, msg)
	if !ok {
		return
	}

	t.mu.Lock()
	t.keyboards[chatID] = sent.MessageID
	t.mu.Unlock()
}

func (t *QuizT) handleAnswerCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	// Whatever the press resolves to, these buttons are done.
	t.mu.Lock()
	if last, ok := t.keyboards[chatID]; ok && last == messageID {
		delete(t.keyboards, chatID)
	}
	t.mu.Unlock()
	t.removeKeyboard(chatID, messageID)

	number, input, ok := parseAnswerData(query.Data)
	if !ok {
		t.log.Warn("malformed answer callback", zap.String("data", query.Data))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q, err := t.service.CurrentQuestion(ctx, sessionKey(chatID))
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		t.send(chatID, MsgNoSession)
		return
	case errors.Is(err, quiz.ErrSessionNotInProgress):
		t.send(chatID, MsgQuizOver)
		return
	case err != nil && !errors.Is(err, quiz.ErrInsufficientDistractors):
		t.log.Error("failed to get question", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	if q.Number != number {
		t.send(chatID, MsgAnswered)
		return
	}

	t.answer(chatID, input)
}

// dropKeyboard removes the answer buttons of the last question sent to the
// chat.
func (t *QuizT) dropKeyboard(chatID int64) {
	t.mu.Lock()
	last, ok := t.keyboards[chatID]
	delete(t.keyboards, chatID)
	t.mu.Unlock()

	if ok {
		t.removeKeyboard(chatID, last)
	}
}

func (t *QuizT) removeKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	sendMessage(t.bot, t.log, edit)
}

// answerData encodes a button press as quiz:<question number>:<input>.
func answerData(number int, input string) string {
	return CallbackAnswerPrefix + strconv.Itoa(number) + ":" + input
}

func parseAnswerData(data string) (int, string, bool) {
	rest, ok := strings.CutPrefix(data, CallbackAnswerPrefix)
	if !ok {
		return 0, "", false
	}

	num, input, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, "", false
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return 0, "", false
	}

	return n, input, true
}

// answer submits input for the chat's session and replies with feedback and
// then the next question or the final report.
func (t *QuizT) answer(chatID int64, input string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := sessionKey(chatID)

	t.dropKeyboard(chatID)

	outcome, status, err := t.service.SubmitAnswer(ctx, key, input)
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		t.send(chatID, MsgNoSession)
		return
	case errors.Is(err, quiz.ErrSessionNotInProgress):
		t.send(chatID, MsgQuizOver)
		return
	case err != nil:
		t.log.Error("failed to submit answer", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	if msg := report.Feedback(outcome); msg != "" {
		t.send(chatID, feedbackIcon(outcome.Kind)+msg)
	}

	if status == models.StatusFinished {
		t.sendResults(chatID)
		return
	}

	q, err := t.service.CurrentQuestion(ctx, key)
	if err != nil && !errors.Is(err, quiz.ErrInsufficientDistractors) {
		t.log.Error("failed to get question", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	t.sendQuestion(chatID, q, err)
}

func (t *QuizT) sendResults(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summary, err := t.service.Results(ctx, sessionKey(chatID))
	switch {
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, quiz.ErrSessionNotFinished):
		t.send(chatID, MsgNoResults)
		return
	case err != nil:
		t.log.Error("failed to get results", zap.Int64("chat", chatID), zap.Error(err))
		t.send(chatID, MsgSomethingWent)
		return
	}

	t.send(chatID, "📊 "+report.Render(summary))
}

func feedbackIcon(kind models.OutcomeKind) string {
	switch kind {
	case models.OutcomeCorrect:
		return "✅ "
	case models.OutcomeIncorrect:
		return "❌ "
	default:
		return "⚠️ "
	}
}
