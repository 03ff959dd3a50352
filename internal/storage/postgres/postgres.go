package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Storage хранит импортированные из банка вопросы в Postgres.
type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

// Migrate создаёт таблицу вопросов, если её нет.
func (s *Storage) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS questions (
		id                UUID PRIMARY KEY,
		category          TEXT NOT NULL DEFAULT '',
		type              TEXT NOT NULL DEFAULT '',
		difficulty        TEXT NOT NULL DEFAULT '',
		question          TEXT NOT NULL UNIQUE,
		correct_answer    TEXT NOT NULL,
		incorrect_answers TEXT[] NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL
	)
	`

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create questions table: %w", err)
	}

	return nil
}

// SaveQuestions сохраняет записи одним батчем, пропуская уже известные вопросы.
// Возвращает количество добавленных записей.
func (s *Storage) SaveQuestions(ctx context.Context, questions []models.RawQuestion) (int, error) {
	query := `
	INSERT INTO questions (id, category, type, difficulty, question, correct_answer, incorrect_answers, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (question) DO NOTHING
	`

	batch := &pgx.Batch{}
	now := time.Now()

	for _, q := range questions {
		batch.Queue(query,
			uuid.NewString(),
			q.Category,
			q.Type,
			q.Difficulty,
			q.Question,
			q.CorrectAnswer,
			q.IncorrectAnswers,
			now,
		)
	}

	results := s.pool.SendBatch(ctx, batch)

	defer func() {
		_ = results.Close()
	}()

	inserted := 0

	for range questions {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert question: %w", err)
		}

		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListQuestions возвращает до limit случайных вопросов.
func (s *Storage) ListQuestions(ctx context.Context, limit int) ([]models.RawQuestion, error) {
	query := `
	SELECT id::text, category, type, difficulty, question, correct_answer, incorrect_answers, created_at
	FROM questions
	ORDER BY random()
	LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.RawQuestion, 0, limit)

	for rows.Next() {
		var q models.RawQuestion

		err = rows.Scan(
			&q.ID,
			&q.Category,
			&q.Type,
			&q.Difficulty,
			&q.Question,
			&q.CorrectAnswer,
			&q.IncorrectAnswers,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CountQuestions возвращает количество сохранённых вопросов.
func (s *Storage) CountQuestions(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*) FROM questions
	`

	var count int
	err := s.pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
