package ui

import "github.com/letsssgooo/triviaQuiz/internal/quiz"

// Class — класс отображения варианта ответа.
type Class string

const (
	ClassNeutral Class = ""
	ClassCorrect Class = "correct"
	ClassWrong   Class = "wrong"
)

// OptionClass вычисляет класс отображения варианта position (начиная с 1).
// До ответа все варианты нейтральные. После ответа правильный вариант
// подсвечивается как correct, а выбранный неправильный - как wrong.
func OptionClass(question quiz.Question, selected int, locked bool, position int) Class {
	if !locked {
		return ClassNeutral
	}

	switch position {
	case question.Correct:
		return ClassCorrect
	case selected:
		return ClassWrong
	default:
		return ClassNeutral
	}
}
