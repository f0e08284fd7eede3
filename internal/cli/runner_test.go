package cli

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCards() []models.Flashcard {
	return []models.Flashcard{
		{Question: "dog", Answer: "inu"},
		{Question: "cat", Answer: "neko"},
		{Question: "bird", Answer: "tori"},
		{Question: "fish", Answer: "sakana"},
	}
}

// newTestRunner uses sorted choices, so with four cards choice 1 is always
// "inu".
func newTestRunner(in io.Reader, out io.Writer) *Runner {
	engine := quiz.NewEngine(quiz.NewGenerator(quiz.OrderSorted, rand.New(rand.NewPCG(1, 2))))
	return NewRunner(in, out, engine, true, zap.NewNop())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cards         []models.Flashcard
		input         string
		wantCorrect   int
		wantAnswered  int
		wantIncorrect int
		wantOutput    []string
	}{
		{
			name:          "answers every question",
			cards:         testCards(),
			input:         "1\n1\n1\n1\n",
			wantCorrect:   1,
			wantAnswered:  4,
			wantIncorrect: 3,
			wantOutput: []string{
				"Question 1/4: ",
				"Question 4/4: ",
				"1. inu\n2. neko\n3. sakana\n4. tori\n",
				"Your answer (or type 'stop' to end the quiz): ",
				"Correct!",
				"Wrong. The correct answer is: ",
			},
		},
		{
			name:         "invalid input then stop",
			cards:        testCards(),
			input:        "abc\n STOP \n",
			wantAnswered: 1,
			wantOutput: []string{
				"Invalid input. Skipping this question.",
				"Question 2/4: ",
			},
		},
		{
			name:         "out of range input",
			cards:        testCards(),
			input:        "5\nstop\n",
			wantAnswered: 1,
			wantOutput:   []string{"Invalid input. Skipping this question."},
		},
		{
			name:         "end of input stops",
			cards:        testCards(),
			input:        "",
			wantAnswered: 0,
			wantOutput:   []string{"Question 1/4: "},
		},
		{
			name:         "last line without newline",
			cards:        testCards(),
			input:        "stop",
			wantAnswered: 0,
		},
		{
			name: "too few answers",
			cards: []models.Flashcard{
				{Question: "dog", Answer: "inu"},
				{Question: "cat", Answer: "neko"},
			},
			input:        "",
			wantAnswered: 2,
			wantOutput: []string{
				"Not enough distinct answers to build choices for this question. Skipping.",
				"Question 2/2: ",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			runner := newTestRunner(strings.NewReader(tt.input), &out)

			summary, err := runner.Run(context.Background(), tt.cards)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCorrect, summary.NumCorrect)
			assert.Equal(t, tt.wantAnswered, summary.NumAnswered)
			assert.Len(t, summary.IncorrectAnswers, tt.wantIncorrect)
			assert.Equal(t, len(tt.cards), summary.TotalQuestions)

			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRunner_RunEmptySet(t *testing.T) {
	t.Parallel()

	runner := newTestRunner(strings.NewReader(""), io.Discard)

	_, err := runner.Run(context.Background(), nil)
	require.ErrorIs(t, err, quiz.ErrEmptySet)
}

func TestRunner_RunCanceled(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	summary, err := newTestRunner(pr, &out).Run(ctx, testCards())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.NumAnswered)
	assert.Contains(t, out.String(), "Question 1/4: ")
}

func TestRunner_Report(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	runner := newTestRunner(strings.NewReader(""), &out)
	path := filepath.Join(t.TempDir(), "results.txt")

	summary := models.ResultSummary{
		NumCorrect:     1,
		NumAnswered:    2,
		TotalQuestions: 4,
		IncorrectAnswers: []models.IncorrectAnswer{
			{Question: "cat", UserChoice: "tori", CorrectAnswer: "neko"},
		},
	}

	require.NoError(t, runner.Report(summary, path))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(saved))
	assert.Contains(t, string(saved), "Your score: 1/2\n")
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestRunner_SelectFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      []string
		input      string
		want       string
		wantErrIs  error
		wantOutput []string
	}{
		{
			name:      "no spreadsheets",
			files:     []string{"notes.txt"},
			wantErrIs: ErrNoSpreadsheets,
		},
		{
			name:  "single spreadsheet",
			files: []string{"animals.xlsx", "notes.txt"},
			want:  "animals.xlsx",
		},
		{
			name:  "prompts until valid",
			files: []string{"animals.xlsx", "colors.xlsx", "numbers.xlsx"},
			input: "two\n7\n2\n",
			want:  "colors.xlsx",
			wantOutput: []string{
				"Please select an Excel file to use for the quiz:\n1. animals.xlsx\n2. colors.xlsx\n3. numbers.xlsx\n",
				"Enter the number of the file you want to use: ",
				"Invalid input. Please enter a number.",
				"Invalid selection. Please choose a valid number.",
			},
		},
		{
			name:      "input ends",
			files:     []string{"animals.xlsx", "colors.xlsx"},
			input:     "",
			wantErrIs: io.EOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, dir, tt.files...)

			var out bytes.Buffer
			runner := newTestRunner(strings.NewReader(tt.input), &out)

			got, err := runner.SelectFile(context.Background(), dir)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
