package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/letsssgooo/triviaQuiz/internal/quiz"
)

// Game определяет операции квиза, которые вызывает терминал.
type Game interface {
	Start(ctx context.Context) <-chan error
	SubmitAnswer(position int) (bool, error)
	Advance() error
	Snapshot() quiz.View
}

// Terminal реализует отрисовку квиза в терминале.
// Команды читаются построчно из in, экран пишется в out.
type Terminal struct {
	game   Game
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	title   *color.Color
	correct *color.Color
	wrong   *color.Color
	muted   *color.Color
}

// NewTerminal создаёт терминал для игры game.
func NewTerminal(game Game, in io.Reader, out io.Writer, logger *slog.Logger) *Terminal {
	return &Terminal{
		game:    game,
		in:      in,
		out:     out,
		logger:  logger,
		title:   color.New(color.Bold),
		correct: color.New(color.FgGreen, color.Bold),
		wrong:   color.New(color.FgRed, color.Bold),
		muted:   color.New(color.Faint),
	}
}

type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdAnswer
	cmdNext
	cmdRestart
	cmdQuit
)

type command struct {
	kind     commandKind
	position int
}

// parseCommand разбирает строку ввода: буква A-D или цифра 1-4 - ответ,
// пустая строка или n - дальше, r - заново, q - выход.
func parseCommand(line string) command {
	input := strings.ToUpper(strings.TrimSpace(line))

	switch input {
	case "", "N", "NEXT":
		return command{kind: cmdNext}
	case "R", "RESTART", "AGAIN":
		return command{kind: cmdRestart}
	case "Q", "QUIT", "EXIT":
		return command{kind: cmdQuit}
	}

	if position, ok := quiz.LetterToPosition(input); ok {
		return command{kind: cmdAnswer, position: position}
	}

	if position, err := strconv.Atoi(input); err == nil {
		return command{kind: cmdAnswer, position: position}
	}

	return command{kind: cmdUnknown}
}

// Run показывает стартовый экран и ведёт пользователя по квизу,
// пока он не выйдет или не закончится ввод.
func (t *Terminal) Run(ctx context.Context) error {
	lines := t.readLines(ctx)

	t.printf("%s\n%s\n", t.title.Sprint("Quiz App"), strings.Repeat("─", 40))
	t.printf("Press Enter to start the quiz, q to quit.\n")

	cmd, err := t.readCommand(ctx, lines)
	if err != nil {
		return err
	}

	if cmd.kind == cmdQuit {
		return nil
	}

	for {
		if err = t.load(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			t.renderError(err)

			var retry bool

			retry, err = t.askRetry(ctx, lines)
			if err != nil || !retry {
				return err
			}

			continue
		}

		var again bool

		again, err = t.play(ctx, lines)
		if err != nil || !again {
			return err
		}
	}
}

// load загружает новую сессию и ждёт результата.
func (t *Terminal) load(ctx context.Context) error {
	t.printf("\n%s\n", t.muted.Sprint("Loading questions..."))

	select {
	case err := <-t.game.Start(ctx):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// play ведёт одну сессию. Возвращает true, если пользователь хочет начать заново.
func (t *Terminal) play(ctx context.Context, lines <-chan string) (bool, error) {
	type screen struct {
		index  int
		locked bool
	}

	var last *screen

	for {
		view := t.game.Snapshot()

		if view.Finished {
			t.renderResult(view)
			return t.askAgain(ctx, lines)
		}

		current := screen{index: view.Index, locked: view.Locked}
		if last == nil || *last != current {
			t.renderQuestion(view)
			last = &current
		}

		cmd, err := t.readCommand(ctx, lines)
		if err != nil {
			return false, err
		}

		switch cmd.kind {
		case cmdQuit:
			return false, nil
		case cmdRestart:
			return true, nil
		case cmdNext:
			if err = t.game.Advance(); errors.Is(err, quiz.ErrNotAnswered) {
				t.printf("Choose an answer first.\n")
			} else if err != nil {
				return false, err
			}
		case cmdAnswer:
			if err = t.answer(cmd.position); err != nil {
				return false, err
			}
		default:
			t.printf("Unknown command. Type A-D to answer, Enter for next, r to restart, q to quit.\n")
		}
	}
}

// answer отправляет ответ и печатает реакцию.
// Ошибки повторного и неверного ответа не прерывают игру.
func (t *Terminal) answer(position int) error {
	isCorrect, err := t.game.SubmitAnswer(position)

	switch {
	case errors.Is(err, quiz.ErrAlreadyLocked):
		t.printf("Answer is locked, press Enter for the next question.\n")
	case errors.Is(err, quiz.ErrInvalidOption):
		t.printf("Choose an option from %s to %s.\n",
			quiz.AnswerLetters[0], quiz.AnswerLetters[len(quiz.AnswerLetters)-1])
	case err != nil:
		return err
	case isCorrect:
		t.printf("%s\n", t.correct.Sprint("Correct!"))
	default:
		t.printf("%s\n", t.wrong.Sprint("Wrong!"))
	}

	return nil
}

// askRetry ждёт решения пользователя на экране ошибки загрузки.
func (t *Terminal) askRetry(ctx context.Context, lines <-chan string) (bool, error) {
	for {
		cmd, err := t.readCommand(ctx, lines)
		if err != nil {
			return false, err
		}

		switch cmd.kind {
		case cmdQuit:
			return false, nil
		case cmdRestart, cmdNext:
			return true, nil
		default:
			t.printf("Press r to try again or q to quit.\n")
		}
	}
}

// askAgain ждёт решения пользователя на экране результата.
func (t *Terminal) askAgain(ctx context.Context, lines <-chan string) (bool, error) {
	for {
		cmd, err := t.readCommand(ctx, lines)
		if err != nil {
			return false, err
		}

		switch cmd.kind {
		case cmdQuit:
			return false, nil
		case cmdRestart, cmdNext:
			return true, nil
		default:
			t.printf("Press r to play again or q to quit.\n")
		}
	}
}

func (t *Terminal) renderQuestion(view quiz.View) {
	q := view.Question

	t.printf("\n%s\n\n", t.title.Sprintf("%d. %s", view.Index+1, q.Text))

	for i, option := range q.Options {
		position := i + 1
		label := fmt.Sprintf("%s. %s", quiz.PositionToLetter(position), option)

		switch OptionClass(q, view.Selected, view.Locked, position) {
		case ClassCorrect:
			label = t.correct.Sprint(label + "  ✓")
		case ClassWrong:
			label = t.wrong.Sprint(label + "  ✗")
		}

		t.printf("  %s\n", label)
	}

	t.printf("\n%s\n", t.muted.Sprintf("%d of %d Questions", view.Index+1, view.Total))
}

func (t *Terminal) renderResult(view quiz.View) {
	t.printf("\n%s\n\n", t.title.Sprintf("Your Score: %d / %d", view.Score, view.Total))

	for _, answer := range view.Answers {
		if answer.QuestionIdx >= len(view.Questions) {
			continue
		}

		q := view.Questions[answer.QuestionIdx]

		mark := t.correct.Sprint("✓")
		if !answer.IsCorrect {
			mark = t.wrong.Sprint("✗")
		}

		t.printf("%s %d. %s\n", mark, answer.QuestionIdx+1, q.Text)
		if !answer.IsCorrect {
			t.printf("     your answer: %s, correct: %s\n", q.Options[answer.Position-1], q.CorrectOption())
		}
	}

	t.printf("\nPress r to play again, q to quit.\n")
}

func (t *Terminal) renderError(err error) {
	t.logger.Debug("showing load error", "err", err)

	t.printf("\n%s\n", t.wrong.Sprintf("Error: %v", err))
	t.printf("Please try again. Press r to try again, q to quit.\n")
}

// readLines читает ввод в отдельной горутине, чтобы ожидание строки
// можно было прервать через ctx.
func (t *Terminal) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			t.logger.Warn("failed to read input", "err", err)
		}
	}()

	return lines
}

// readCommand ждёт следующую команду. Конец ввода считается выходом.
func (t *Terminal) readCommand(ctx context.Context, lines <-chan string) (command, error) {
	t.printf("> ")

	select {
	case <-ctx.Done():
		return command{}, ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return command{kind: cmdQuit}, nil
		}

		return parseCommand(line), nil
	}
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}
