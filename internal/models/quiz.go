package models

import "errors"

var ErrSessionNotFound = errors.New("quiz session not found")

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not_started"
	StatusInProgress SessionStatus = "in_progress"
	StatusFinished   SessionStatus = "finished"
)

type IncorrectAnswer struct {
	Question      string `json:"question"`
	UserChoice    string `json:"user_choice"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuizState is the whole state of one quiz session. It is a plain value so
// drivers can keep it in memory or round-trip it through a session store.
type QuizState struct {
	Status           SessionStatus     `json:"status"`
	Flashcards       []Flashcard       `json:"flashcards"`
	CurrentIndex     int               `json:"current_index"`
	NumCorrect       int               `json:"num_correct"`
	IncorrectAnswers []IncorrectAnswer `json:"incorrect_answers"`

	// Choices shown for the current question. Generated once per turn and
	// checked against on submit.
	Choices      []string `json:"choices,omitempty"`
	ChoicesError string   `json:"choices_error,omitempty"`
}

type Question struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

type OutcomeKind string

const (
	OutcomeCorrect   OutcomeKind = "correct"
	OutcomeIncorrect OutcomeKind = "incorrect"
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomeStopped   OutcomeKind = "stopped"
)

type AnswerOutcome struct {
	Kind          OutcomeKind `json:"kind"`
	Question      string      `json:"question,omitempty"`
	Selected      string      `json:"selected,omitempty"`
	CorrectAnswer string      `json:"correct_answer,omitempty"`
	Reason        error       `json:"-"`
}

type ResultSummary struct {
	NumCorrect       int               `json:"num_correct"`
	NumAnswered      int               `json:"num_answered"`
	TotalQuestions   int               `json:"total_questions"`
	IncorrectAnswers []IncorrectAnswer `json:"incorrect_answers"`
}
