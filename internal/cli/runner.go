package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/DanRulev/flashquiz/internal/flashcards"
	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/internal/report"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var ErrNoSpreadsheets = errors.New("no spreadsheets found")

type line struct {
	text string
	err  error
}

// Runner plays a quiz over a line-oriented terminal.
type Runner struct {
	out      io.Writer
	engine   *quiz.Engine
	renderer *lipgloss.Renderer
	noColor  bool
	log      *zap.Logger

	in    *bufio.Reader
	once  sync.Once
	lines chan line
}

func NewRunner(in io.Reader, out io.Writer, engine *quiz.Engine, noColor bool, log *zap.Logger) *Runner {
	return &Runner{
		out:      out,
		engine:   engine,
		renderer: lipgloss.NewRenderer(out),
		noColor:  noColor,
		log:      log,
		in:       bufio.NewReader(in),
		lines:    make(chan line),
	}
}

// readLine waits for the next input line. It returns io.EOF when input is
// exhausted and the context error when ctx is done first.
func (r *Runner) readLine(ctx context.Context) (string, error) {
	r.once.Do(func() {
		go func() {
			for {
				text, err := r.in.ReadString('\n')
				if err != nil && text == "" {
					r.lines <- line{err: err}
					close(r.lines)
					return
				}
				r.lines <- line{text: strings.TrimRight(text, "\r\n")}
			}
		}()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Run asks every question in turn until the set is exhausted, the user types
// stop, input ends or ctx is canceled. The last three all end the quiz as a
// stop.
func (r *Runner) Run(ctx context.Context, cards []models.Flashcard) (models.ResultSummary, error) {
	state, err := r.engine.Start(cards)
	if err != nil {
		return models.ResultSummary{}, err
	}

	for state.Status == models.StatusInProgress {
		question, err := r.engine.Current(state)
		noChoices := errors.Is(err, quiz.ErrInsufficientDistractors)
		if err != nil && !noChoices {
			return models.ResultSummary{}, err
		}

		r.printf("%s", report.QuestionText(question))

		var input string
		if !noChoices {
			r.printf("%s", report.AnswerPrompt)
			input, err = r.readLine(ctx)
			if err != nil {
				r.printf("\n")
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					r.log.Warn("failed to read answer", zap.Error(err))
				}
				input = "stop"
			}
		}

		var outcome models.AnswerOutcome
		state, outcome, err = r.engine.Submit(state, input)
		if err != nil {
			return models.ResultSummary{}, err
		}

		if msg := report.Feedback(outcome); msg != "" {
			r.printf("%s\n\n", stylize(r.renderer, msg, r.noColor, outcomeColor(outcome.Kind)))
		}
	}

	return quiz.Finalize(state)
}

// Report prints the summary and saves the same text to path.
func (r *Runner) Report(summary models.ResultSummary, path string) error {
	if err := report.Write(r.out, summary); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if err := report.Save(path, summary); err != nil {
		return err
	}

	r.log.Info("results saved", zap.String("path", path))

	return nil
}

// SelectFile picks the spreadsheet to use from dir. A single candidate is
// returned without asking.
func (r *Runner) SelectFile(ctx context.Context, dir string) (string, error) {
	files, err := flashcards.FindSpreadsheets(dir)
	if err != nil {
		return "", err
	}

	switch len(files) {
	case 0:
		r.printf("No Excel files found in %s.\n", dir)
		return "", ErrNoSpreadsheets
	case 1:
		return files[0], nil
	}

	r.printf("Please select an Excel file to use for the quiz:\n")
	for i, f := range files {
		r.printf("%d. %s\n", i+1, filepath.Base(f))
	}

	for {
		r.printf("Enter the number of the file you want to use: ")
		input, err := r.readLine(ctx)
		if err != nil {
			r.printf("\n")
			return "", err
		}

		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			r.printf("Invalid input. Please enter a number.\n")
			continue
		}
		if n < 1 || n > len(files) {
			r.printf("Invalid selection. Please choose a valid number.\n")
			continue
		}

		return files[n-1], nil
	}
}
