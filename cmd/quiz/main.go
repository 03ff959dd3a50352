package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/letsssgooo/triviaQuiz/internal/client"
	"github.com/letsssgooo/triviaQuiz/internal/config"
	"github.com/letsssgooo/triviaQuiz/internal/importer"
	"github.com/letsssgooo/triviaQuiz/internal/lib/slogcustom"
	"github.com/letsssgooo/triviaQuiz/internal/quiz"
	"github.com/letsssgooo/triviaQuiz/internal/storage/postgres"
	"github.com/letsssgooo/triviaQuiz/internal/ui"
)

const commandImport = "import"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := pflag.NewFlagSet("quiz", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "question source: bank, static or stored")
	flags.IntVar(&cfg.Amount, "amount", cfg.Amount, "number of questions")
	flags.IntVar(&cfg.Category, "category", cfg.Category, "bank category id, 0 for any")
	flags.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "easy, medium, hard or empty for any")
	flags.StringVar(&cfg.Type, "type", cfg.Type, "question type")
	flags.StringVar(&cfg.BankURL, "bank-url", cfg.BankURL, "base url of the question bank")
	flags.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "bank request timeout")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "shuffle seed, 0 for random")
	flags.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres connection string")
	logLevel := flags.String("log-level", cfg.LogLevel.String(), "debug, info, warn or error")
	rounds := flags.Int("rounds", 1, "number of bank requests for the import command")
	parallel := flags.Int("parallel", 1, "concurrent bank requests for the import command")

	if err = flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return fmt.Errorf("parsing flags: %w", err)
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	importing := flags.Arg(0) == commandImport
	if importing && cfg.PostgresDSN == "" {
		return fmt.Errorf("%w: import requires a postgres dsn", config.ErrInvalidConfig)
	}

	if err = cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slogcustom.NewCustomHandler(stderr, cfg.LogLevel))
	slog.SetDefault(logger)

	if importing {
		return runImport(ctx, cfg, *rounds, *parallel, logger)
	}

	return runQuiz(ctx, cfg, stdin, stdout, logger)
}

func runImport(ctx context.Context, cfg *config.Config, rounds, parallel int, logger *slog.Logger) error {
	store, err := openStorage(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	bank := client.NewHTTPClient(cfg.BankURL, cfg.HTTPTimeout)

	if _, err = importer.New(bank, store, parallel, logger).Run(ctx, cfg.BankParams(), rounds); err != nil {
		return fmt.Errorf("importing questions: %w", err)
	}

	return nil
}

func runQuiz(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	shuffler := quiz.NewShuffler(cfg.Seed)

	var source quiz.Source

	switch cfg.Mode {
	case config.ModeStatic:
		source = quiz.NewStaticSource()
	case config.ModeStored:
		store, err := openStorage(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		source = quiz.NewStoredSource(store, cfg.Amount, shuffler, logger)
	default:
		bank := client.NewHTTPClient(cfg.BankURL, cfg.HTTPTimeout)
		source = quiz.NewBankSource(bank, cfg.BankParams(), shuffler, logger)
	}

	logger.Info("starting quiz", "mode", cfg.Mode, "amount", cfg.Amount)

	ctrl := quiz.NewController(source, logger)
	term := ui.NewTerminal(ctrl, stdin, stdout, logger)

	err := term.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Debug("quiz interrupted")
		return nil
	}

	return err
}

func openStorage(ctx context.Context, dsn string, logger *slog.Logger) (*postgres.Storage, error) {
	store, err := postgres.NewStorage(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err = store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("connected to postgres")

	return store, nil
}
