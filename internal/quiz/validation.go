package quiz

import "fmt"

// validateQuestions проверяет на корректность набор вопросов сессии
func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	for i, question := range questions {
		if question.Text == "" {
			return fmt.Errorf("%w: missing text of %d question", ErrInvalidQuestion, i)
		}

		if len(question.Options) < 2 {
			return fmt.Errorf("%w: amount of options must be at least two in %d question", ErrInvalidQuestion, i)
		}

		if question.Correct < 1 || question.Correct > len(question.Options) {
			return fmt.Errorf("%w: position of correct answer in %d question is out of range", ErrInvalidQuestion, i)
		}
	}

	return nil
}
