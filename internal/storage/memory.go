package storage

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// MemoryStorage реализует Storage в памяти.
type MemoryStorage struct {
	questions []models.RawQuestion
	known     map[string]struct{} // ключ - текст вопроса
	mu        sync.RWMutex
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		known: make(map[string]struct{}),
	}
}

// SaveQuestions сохраняет вопросы.
func (s *MemoryStorage) SaveQuestions(_ context.Context, questions []models.RawQuestion) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0

	for _, q := range questions {
		if _, ok := s.known[q.Question]; ok {
			continue
		}

		q.ID = uuid.NewString()
		q.CreatedAt = time.Now()
		q.IncorrectAnswers = slices.Clone(q.IncorrectAnswers)

		s.known[q.Question] = struct{}{}
		s.questions = append(s.questions, q)
		inserted++
	}

	return inserted, nil
}

// ListQuestions возвращает до limit случайных вопросов.
func (s *MemoryStorage) ListQuestions(_ context.Context, limit int) ([]models.RawQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := rand.Perm(len(s.questions))
	if limit >= 0 && limit < len(order) {
		order = order[:limit]
	}

	questions := make([]models.RawQuestion, 0, len(order))
	for _, i := range order {
		q := s.questions[i]
		q.IncorrectAnswers = slices.Clone(q.IncorrectAnswers)
		questions = append(questions, q)
	}

	return questions, nil
}

// CountQuestions возвращает количество сохранённых вопросов.
func (s *MemoryStorage) CountQuestions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.questions), nil
}
