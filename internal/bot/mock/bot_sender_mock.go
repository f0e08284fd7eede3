package mock_bot

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MockBot struct {
	SentMessages []tgbotapi.Chattable
	Requests     []tgbotapi.Chattable
	// FileURLs maps file ids to direct download URLs.
	FileURLs map[string]string
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages), Chat: &tgbotapi.Chat{ID: 123}}, nil
}

func (m *MockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *MockBot) GetFileDirectURL(fileID string) (string, error) {
	url, ok := m.FileURLs[fileID]
	if !ok {
		return "", errors.New("file not found")
	}
	return url, nil
}

// Texts returns the text of every sent message.
func (m *MockBot) Texts() []string {
	var texts []string
	for _, c := range m.SentMessages {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

func ClearSentMessages(bot *MockBot) {
	bot.SentMessages = nil
	bot.Requests = nil
}
