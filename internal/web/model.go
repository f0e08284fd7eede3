package web

import "github.com/DanRulev/flashquiz/internal/models"

type QuestionResponse struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
	// Note is set when the question has no choices and any answer skips it.
	Note string `json:"note,omitempty"`
}

type StartSessionResponse struct {
	SessionID string           `json:"session_id"`
	Question  QuestionResponse `json:"question"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type AnswerResponse struct {
	Outcome       models.OutcomeKind `json:"outcome"`
	Message       string             `json:"message,omitempty"`
	Selected      string             `json:"selected,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Finished      bool               `json:"finished"`
	Next          *QuestionResponse  `json:"next,omitempty"`
}

type ResultsResponse struct {
	models.ResultSummary
	// Percentage is empty when nothing was answered.
	Percentage string `json:"percentage,omitempty"`
	Report     string `json:"report"`
}
