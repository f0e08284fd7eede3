package quiz

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/DanRulev/flashquiz/internal/models"
)

const stopCommand = "stop"

// Engine drives quiz sessions. Every transition takes a state value and
// returns a new one, so callers decide where the state lives between turns.
type Engine struct {
	gen *Generator
}

func NewEngine(gen *Generator) *Engine {
	return &Engine{gen: gen}
}

// Start shuffles a copy of flashcards and prepares the first question.
func (e *Engine) Start(flashcards []models.Flashcard) (models.QuizState, error) {
	if len(flashcards) == 0 {
		return models.QuizState{Status: models.StatusNotStarted}, ErrEmptySet
	}

	cards := slices.Clone(flashcards)
	e.gen.shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	state := models.QuizState{
		Status:           models.StatusInProgress,
		Flashcards:       cards,
		IncorrectAnswers: []models.IncorrectAnswer{},
	}

	return e.prepare(state), nil
}

// Current returns the question of the current turn with the choices cached
// for it. When no choices could be built the question is still returned
// along with an error wrapping ErrInsufficientDistractors.
func (e *Engine) Current(state models.QuizState) (models.Question, error) {
	if err := checkInProgress(state); err != nil {
		return models.Question{}, err
	}

	card := state.Flashcards[state.CurrentIndex]
	question := models.Question{
		Number: state.CurrentIndex + 1,
		Total:  len(state.Flashcards),
		Text:   card.Question,
	}

	if err := choicesErr(state); err != nil {
		return question, err
	}

	question.Choices = slices.Clone(state.Choices)
	return question, nil
}

// Submit applies one user response to the current question.
func (e *Engine) Submit(state models.QuizState, rawInput string) (models.QuizState, models.AnswerOutcome, error) {
	if err := checkInProgress(state); err != nil {
		return state, models.AnswerOutcome{}, err
	}

	card := state.Flashcards[state.CurrentIndex]

	if strings.EqualFold(strings.TrimSpace(rawInput), stopCommand) {
		state.Status = models.StatusFinished
		state.Choices = nil
		state.ChoicesError = ""
		return state, models.AnswerOutcome{Kind: models.OutcomeStopped, Question: card.Question}, nil
	}

	outcome := models.AnswerOutcome{
		Question:      card.Question,
		CorrectAnswer: card.Answer,
	}

	choice, err := pickChoice(state, rawInput)
	switch {
	case err != nil:
		outcome.Kind = models.OutcomeSkipped
		outcome.Reason = err
	case sameAnswer(choice, card.Answer):
		outcome.Kind = models.OutcomeCorrect
		outcome.Selected = choice
		state.NumCorrect++
	default:
		outcome.Kind = models.OutcomeIncorrect
		outcome.Selected = choice
		state.IncorrectAnswers = append(slices.Clone(state.IncorrectAnswers), models.IncorrectAnswer{
			Question:      card.Question,
			UserChoice:    choice,
			CorrectAnswer: card.Answer,
		})
	}

	state.CurrentIndex++
	if state.CurrentIndex >= len(state.Flashcards) {
		state.Status = models.StatusFinished
		state.Choices = nil
		state.ChoicesError = ""
		return state, outcome, nil
	}

	return e.prepare(state), outcome, nil
}

// Finalize summarizes a finished session. The score denominator is the
// number of turns taken, not the size of the set.
func Finalize(state models.QuizState) (models.ResultSummary, error) {
	if state.Status != models.StatusFinished {
		return models.ResultSummary{}, ErrSessionNotFinished
	}
	if state.CurrentIndex < 0 || state.CurrentIndex > len(state.Flashcards) {
		return models.ResultSummary{}, fmt.Errorf("%w: %d turns taken of %d", ErrInvalidState, state.CurrentIndex, len(state.Flashcards))
	}

	incorrect := slices.Clone(state.IncorrectAnswers)
	if incorrect == nil {
		incorrect = []models.IncorrectAnswer{}
	}

	return models.ResultSummary{
		NumCorrect:       state.NumCorrect,
		NumAnswered:      state.CurrentIndex,
		TotalQuestions:   len(state.Flashcards),
		IncorrectAnswers: incorrect,
	}, nil
}

func (e *Engine) prepare(state models.QuizState) models.QuizState {
	card := state.Flashcards[state.CurrentIndex]

	choices, err := e.gen.Generate(state.Flashcards, card.Answer)
	state.Choices = choices
	state.ChoicesError = ""
	if err != nil {
		state.ChoicesError = err.Error()
	}

	return state
}

// checkInProgress guards transitions on state that may have been restored
// from a store.
func checkInProgress(state models.QuizState) error {
	if state.Status != models.StatusInProgress {
		return ErrSessionNotInProgress
	}
	if state.CurrentIndex < 0 || state.CurrentIndex >= len(state.Flashcards) {
		return fmt.Errorf("%w: turn %d of %d", ErrInvalidState, state.CurrentIndex+1, len(state.Flashcards))
	}
	return nil
}

func choicesErr(state models.QuizState) error {
	if state.ChoicesError != "" {
		return &generationError{msg: state.ChoicesError}
	}
	if len(state.Choices) != NumChoices {
		return fmt.Errorf("%w: no choices prepared for question %d", ErrInsufficientDistractors, state.CurrentIndex+1)
	}
	return nil
}

func pickChoice(state models.QuizState, rawInput string) (string, error) {
	if err := choicesErr(state); err != nil {
		return "", err
	}

	n, err := strconv.Atoi(strings.TrimSpace(rawInput))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidInput, rawInput)
	}
	if n < 1 || n > len(state.Choices) {
		return "", fmt.Errorf("%w: choose a number between 1 and %d", ErrInvalidInput, len(state.Choices))
	}

	return state.Choices[n-1], nil
}

func sameAnswer(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
