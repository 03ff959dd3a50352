package storage

import (
	"context"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Storage определяет интерфейс для хранения вопросов, импортированных из банка.
type Storage interface {
	// SaveQuestions сохраняет вопросы, пропуская уже сохранённые.
	// Возвращает количество добавленных.
	SaveQuestions(ctx context.Context, questions []models.RawQuestion) (int, error)

	// ListQuestions возвращает до limit случайных вопросов.
	ListQuestions(ctx context.Context, limit int) ([]models.RawQuestion, error)

	// CountQuestions возвращает количество сохранённых вопросов.
	CountQuestions(ctx context.Context) (int, error)
}
