package quiz

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Session реализует состояние одного прохождения квиза.
// Сессией владеет один вызывающий, методы не синхронизированы.
type Session struct {
	id        string
	questions []Question
	index     int
	selected  int // 0 - ответ не выбран
	locked    bool
	score     int
	finished  bool
	answers   []Answer
}

// NewSession создаёт сессию в состоянии StateIdle.
func NewSession() *Session {
	return &Session{}
}

// Start запускает сессию с набором questions, сбрасывая всё состояние.
// При ошибке состояние сессии не меняется.
func (s *Session) Start(questions []Question) error {
	if err := validateQuestions(questions); err != nil {
		return err
	}

	*s = Session{
		id:        uuid.NewString(),
		questions: slices.Clone(questions),
		answers:   make([]Answer, 0, len(questions)),
	}

	return nil
}

// Reset перезапускает сессию с новым набором вопросов из любого состояния.
func (s *Session) Reset(questions []Question) error {
	return s.Start(questions)
}

// SubmitAnswer регистрирует ответ position (начиная с 1) на текущий вопрос.
// Возвращает true, если ответ правильный.
// Повторный ответ на тот же вопрос возвращает ErrAlreadyLocked и ничего не меняет.
func (s *Session) SubmitAnswer(position int) (bool, error) {
	if s.State() != StateInProgress {
		return false, ErrNotInProgress
	}

	if s.locked {
		return false, ErrAlreadyLocked
	}

	question := s.questions[s.index]
	if position < 1 || position > len(question.Options) {
		return false, fmt.Errorf("%w: %d", ErrInvalidOption, position)
	}

	isCorrect := position == question.Correct

	s.selected = position
	if isCorrect {
		s.score++
	}
	s.locked = true

	s.answers = append(s.answers, Answer{
		QuestionIdx: s.index,
		Position:    position,
		IsCorrect:   isCorrect,
	})

	return isCorrect, nil
}

// Advance переходит к следующему вопросу.
// На последнем вопросе завершает сессию, индекс при этом не меняется.
func (s *Session) Advance() error {
	if s.State() != StateInProgress {
		return ErrNotInProgress
	}

	if !s.locked {
		return ErrNotAnswered
	}

	if s.index == len(s.questions)-1 {
		s.finished = true
		return nil
	}

	s.index++
	s.selected = 0
	s.locked = false

	return nil
}

// State возвращает текущее состояние сессии.
func (s *Session) State() State {
	switch {
	case len(s.questions) == 0:
		return StateIdle
	case s.finished:
		return StateCompleted
	default:
		return StateInProgress
	}
}

// ID возвращает идентификатор запуска сессии.
func (s *Session) ID() string {
	return s.id
}

// Len возвращает количество вопросов.
func (s *Session) Len() int {
	return len(s.questions)
}

// Index возвращает индекс текущего вопроса (начиная с 0).
func (s *Session) Index() int {
	return s.index
}

// Current возвращает текущий вопрос.
func (s *Session) Current() (Question, bool) {
	if len(s.questions) == 0 {
		return Question{}, false
	}

	return s.questions[s.index], true
}

// Selected возвращает выбранный на текущем вопросе вариант.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected != 0
}

// Locked сообщает, дан ли ответ на текущий вопрос.
func (s *Session) Locked() bool {
	return s.locked
}

// Score возвращает количество правильных ответов.
func (s *Session) Score() int {
	return s.score
}

// Finished сообщает, пройден ли последний вопрос.
func (s *Session) Finished() bool {
	return s.finished
}

// Answers возвращает копию ответов пользователя.
func (s *Session) Answers() []Answer {
	return slices.Clone(s.answers)
}

// Question возвращает вопрос по индексу idx.
func (s *Session) Question(idx int) (Question, bool) {
	if idx < 0 || idx >= len(s.questions) {
		return Question{}, false
	}

	return s.questions[idx], true
}

// Result возвращает итог сессии.
func (s *Session) Result() Result {
	return Result{
		SessionID: s.id,
		Score:     s.score,
		Total:     len(s.questions),
		Answers:   s.Answers(),
	}
}
