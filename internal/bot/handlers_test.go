package bot

import (
	"testing"

	mock_bot "github.com/DanRulev/flashquiz/internal/bot/mock"
	"github.com/DanRulev/flashquiz/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTelegramMock(t *testing.T, ctrl *gomock.Controller, setupMock func(*mock_bot.MockQuizSI)) (*TelegramAPI, *mock_bot.MockBot) {
	mockService := mock_bot.NewMockQuizSI(ctrl)
	mockBot := &mock_bot.MockBot{}
	if setupMock != nil {
		setupMock(mockService)
	}

	log := zap.NewNop()

	return &TelegramAPI{
		bot:  mockBot,
		quiz: NewQuizTAPI(mockBot, mockService, mock_bot.NewMockFileDownloaderI(ctrl), 0, log),
		log:  log,
	}, mockBot
}

func command(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(text)},
		},
	}
}

func TestTelegramAPI_handleUpdate(t *testing.T) {
	t.Parallel()

	finished := models.ResultSummary{NumAnswered: 0, IncorrectAnswers: []models.IncorrectAnswer{}}

	tests := []struct {
		name       string
		update     tgbotapi.Update
		f          func(*mock_bot.MockQuizSI)
		assertFunc func(*testing.T, *mock_bot.MockBot)
	}{
		{
			name:   "start command",
			update: tgbotapi.Update{Message: command("/start")},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				require.Len(t, mb.Texts(), 1)
				assert.Contains(t, mb.Texts()[0], "flashcard quiz bot")
			},
		},
		{
			name:   "help command",
			update: tgbotapi.Update{Message: command("/help")},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{helpText}, mb.Texts())
			},
		},
		{
			name:   "unknown command",
			update: tgbotapi.Update{Message: command("/words")},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{"Unknown command. Use /help"}, mb.Texts())
			},
		},
		{
			name:   "stop command",
			update: tgbotapi.Update{Message: command("/stop")},
			f: func(ms *mock_bot.MockQuizSI) {
				ms.EXPECT().SubmitAnswer(gomock.Any(), "tg:123", "stop").
					Return(models.AnswerOutcome{Kind: models.OutcomeStopped}, models.StatusFinished, nil)
				ms.EXPECT().Results(gomock.Any(), "tg:123").Return(finished, nil)
			},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{"📊 Your score: 0/0\nScore percentage: no score (no questions answered)\n"}, mb.Texts())
			},
		},
		{
			name:   "results command",
			update: tgbotapi.Update{Message: command("/results")},
			f: func(ms *mock_bot.MockQuizSI) {
				ms.EXPECT().Results(gomock.Any(), "tg:123").Return(finished, nil)
			},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				require.Len(t, mb.Texts(), 1)
			},
		},
		{
			name: "typed answer",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				Chat: &tgbotapi.Chat{ID: chatID},
				Text: " 2 ",
			}},
			f: func(ms *mock_bot.MockQuizSI) {
				ms.EXPECT().SubmitAnswer(gomock.Any(), "tg:123", " 2 ").
					Return(models.AnswerOutcome{}, models.SessionStatus(""), models.ErrSessionNotFound)
			},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{MsgNoSession}, mb.Texts())
			},
		},
		{
			name: "sticker",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				Chat: &tgbotapi.Chat{ID: chatID},
			}},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{"I did not understand that. Use /help"}, mb.Texts())
			},
		},
		{
			name: "unsupported document",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				Chat:     &tgbotapi.Chat{ID: chatID},
				Document: &tgbotapi.Document{FileID: "f1", FileName: "notes.docx"},
			}},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Equal(t, []string{MsgFileType}, mb.Texts())
			},
		},
		{
			name: "unknown callback",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID:   "cb",
				Data: "new_word",
			}},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Len(t, mb.Requests, 1)
				assert.Empty(t, mb.SentMessages)
			},
		},
		{
			name: "answer callback without message",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID:   "cb",
				Data: "quiz:1",
			}},
			assertFunc: func(t *testing.T, mb *mock_bot.MockBot) {
				assert.Len(t, mb.Requests, 1)
				assert.Empty(t, mb.SentMessages)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			telegram, mockBot := newTelegramMock(t, ctrl, tt.f)

			telegram.handleUpdate(tt.update)

			tt.assertFunc(t, mockBot)
		})
	}
}

func TestSessionKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tg:123", sessionKey(123))
	assert.Equal(t, "tg:-100200", sessionKey(-100200))
}
