package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/shopspring/decimal"
)

const DefaultResultsFile = "quiz_results.txt"

var hundred = decimal.NewFromInt(100)

// Render formats the final score and the review of missed questions.
func Render(summary models.ResultSummary) string {
	var sb strings.Builder

	sb.WriteString("Your score: ")
	sb.WriteString(strconv.Itoa(summary.NumCorrect))
	sb.WriteString("/")
	sb.WriteString(strconv.Itoa(summary.NumAnswered))
	sb.WriteString("\n")

	sb.WriteString("Score percentage: ")
	if pct, ok := Percentage(summary); ok {
		sb.WriteString(pct.StringFixed(1))
		sb.WriteString("%\n")
	} else {
		sb.WriteString("no score (no questions answered)\n")
	}

	if len(summary.IncorrectAnswers) > 0 {
		sb.WriteString("\nReview your incorrect answers:\n")
		for _, ia := range summary.IncorrectAnswers {
			sb.WriteString("Question: ")
			sb.WriteString(ia.Question)
			sb.WriteString("\nYour answer: ")
			sb.WriteString(ia.UserChoice)
			sb.WriteString("\nCorrect answer: ")
			sb.WriteString(ia.CorrectAnswer)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// Percentage returns the share of correct answers among answered ones. ok is
// false when nothing was answered.
func Percentage(summary models.ResultSummary) (decimal.Decimal, bool) {
	if summary.NumAnswered <= 0 {
		return decimal.Zero, false
	}

	return decimal.NewFromInt(int64(summary.NumCorrect)).
		Div(decimal.NewFromInt(int64(summary.NumAnswered))).
		Mul(hundred), true
}

func Write(w io.Writer, summary models.ResultSummary) error {
	if _, err := io.WriteString(w, Render(summary)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Save writes the report to path, replacing any previous file.
func Save(path string, summary models.ResultSummary) error {
	if path == "" {
		path = DefaultResultsFile
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := Write(f, summary); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}

	return nil
}
