package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
)

const (
	AnswerPrompt        = "Your answer (or type 'stop' to end the quiz): "
	MsgCorrect          = "Correct!"
	MsgInvalidInput     = "Invalid input. Skipping this question."
	MsgNotEnoughAnswers = "Not enough distinct answers to build choices for this question. Skipping."
)

// Feedback is the line shown after an answer. Stopping has none.
func Feedback(outcome models.AnswerOutcome) string {
	switch outcome.Kind {
	case models.OutcomeCorrect:
		return MsgCorrect
	case models.OutcomeIncorrect:
		return "Wrong. The correct answer is: " + outcome.CorrectAnswer
	case models.OutcomeSkipped:
		if errors.Is(outcome.Reason, quiz.ErrInsufficientDistractors) {
			return MsgNotEnoughAnswers
		}
		return MsgInvalidInput
	default:
		return ""
	}
}

// QuestionText renders the question header and its numbered choices.
func QuestionText(q models.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d: %s\n", q.Number, q.Total, q.Text)
	for i, choice := range q.Choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, choice)
	}
	return b.String()
}
