package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanRulev/flashquiz/internal/cli"
	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/DanRulev/flashquiz/internal/flashcards"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("quiz", pflag.ContinueOnError)
	fs.String("file", "", "spreadsheet (.xlsx or .csv) with Question and Answer columns")
	fs.String("dir", "", "directory to pick an .xlsx file from when --file is empty")
	fs.String("order", "", "choice order: shuffle or sorted")
	fs.String("results", "", "file the results are saved to")
	fs.String("config", "", "path to a config file")
	fs.Bool("no-color", false, "disable colored feedback")
	return fs
}

func run(args []string) int {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := config.Init(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed load config: "+err.Error())
		return 1
	}

	log := logger.Setup(cfg.Env)
	if cfg.Env != "development" {
		log = log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}
	defer log.Sync()

	order, err := quiz.ParseChoiceOrder(cfg.Quiz.ChoiceOrder)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	noColor, _ := fs.GetBool("no-color")
	engine := quiz.NewEngine(quiz.NewGenerator(order, nil))
	runner := cli.NewRunner(os.Stdin, os.Stdout, engine, noColor, log)

	path := cfg.Quiz.File
	if path == "" {
		path, err = runner.SelectFile(ctx, cfg.Quiz.Dir)
		if err != nil {
			if !errors.Is(err, cli.ErrNoSpreadsheets) {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Fprintln(os.Stderr, "Please add an Excel file to the directory and try again.")
			return 1
		}
	}

	cards, err := flashcards.LoadFile(path)
	if err != nil {
		log.Debug("failed to load flashcards", zap.String("path", path), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Failed to load flashcards from the file. Please check the file and try again.")
		return 1
	}

	summary, err := runner.Run(ctx, cards)
	if err != nil {
		if errors.Is(err, quiz.ErrEmptySet) {
			fmt.Fprintf(os.Stderr, "%s has no flashcards.\n", path)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	fmt.Println()
	if err := runner.Report(summary, cfg.Quiz.ResultsFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
