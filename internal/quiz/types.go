package quiz

import (
	"context"
	"errors"
)

// OptionsCount - количество вариантов ответа у вопроса.
const OptionsCount = 4

// Question представляет вопрос квиза.
// Correct - номер правильного варианта в Options, начиная с 1.
type Question struct {
	Text       string
	Options    []string
	Correct    int
	Category   string
	Difficulty string
}

// CorrectOption возвращает текст правильного варианта.
func (q Question) CorrectOption() string {
	if q.Correct < 1 || q.Correct > len(q.Options) {
		return ""
	}

	return q.Options[q.Correct-1]
}

// Answer представляет ответ пользователя на вопрос.
type Answer struct {
	QuestionIdx int
	Position    int
	IsCorrect   bool
}

// Result содержит итог сессии.
type Result struct {
	SessionID string
	Score     int
	Total     int
	Answers   []Answer
}

// State — состояние сессии.
type State string

const (
	StateIdle       State = "idle"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Source определяет источник вопросов.
type Source interface {
	// Load возвращает непустой набор вопросов для новой сессии.
	Load(ctx context.Context) ([]Question, error)
}

// Ошибки сессии
var (
	ErrNoQuestions      = errors.New("no questions to start session")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrNotInProgress    = errors.New("session is not in progress")
	ErrAlreadyLocked    = errors.New("answer already submitted for current question")
	ErrNotAnswered      = errors.New("current question is not answered")
	ErrInvalidOption    = errors.New("invalid option position")
	ErrStaleLoad        = errors.New("load result discarded by newer start")
	ErrUnusableQuestion = errors.New("unusable question record")
)

// AnswerLetters — буквы вариантов ответа (A=1, B=2, ...).
var AnswerLetters = []string{"A", "B", "C", "D"}

// LetterToPosition преобразует букву в номер варианта (A=1, B=2, ...).
func LetterToPosition(letter string) (int, bool) {
	for i, l := range AnswerLetters {
		if l == letter {
			return i + 1, true
		}
	}

	return 0, false
}

// PositionToLetter преобразует номер варианта в букву (1=A, 2=B, ...).
func PositionToLetter(position int) string {
	if position >= 1 && position <= len(AnswerLetters) {
		return AnswerLetters[position-1]
	}

	return ""
}
