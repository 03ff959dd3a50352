package quiz

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"slices"

	"github.com/letsssgooo/triviaQuiz/internal/client"
	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// BankSource загружает вопросы из банка вопросов.
type BankSource struct {
	client   client.Client
	params   client.Params
	shuffler *Shuffler
	logger   *slog.Logger
}

// NewBankSource создаёт источник вопросов, который делает один запрос
// к банку с параметрами params на каждую загрузку.
func NewBankSource(c client.Client, params client.Params, shuffler *Shuffler, logger *slog.Logger) *BankSource {
	return &BankSource{
		client:   c,
		params:   params,
		shuffler: shuffler,
		logger:   logger,
	}
}

// Load загружает и нормализует вопросы из банка.
func (s *BankSource) Load(ctx context.Context) ([]Question, error) {
	s.logger.Debug("loading questions from bank",
		"amount", s.params.Amount,
		"category", s.params.Category,
		"difficulty", s.params.Difficulty,
	)

	records, err := s.client.GetQuestions(ctx, s.params)
	if err != nil {
		return nil, fmt.Errorf("can not load questions from bank, %w", err)
	}

	return buildQuestions(records, s.shuffler, s.logger)
}

// QuestionStore определяет хранилище сырых записей вопросов.
type QuestionStore interface {
	// ListQuestions возвращает до limit случайных записей.
	ListQuestions(ctx context.Context, limit int) ([]models.RawQuestion, error)
}

// StoredSource загружает вопросы, ранее импортированные из банка в хранилище.
type StoredSource struct {
	store    QuestionStore
	limit    int
	shuffler *Shuffler
	logger   *slog.Logger
}

// NewStoredSource создаёт источник вопросов поверх хранилища.
func NewStoredSource(store QuestionStore, limit int, shuffler *Shuffler, logger *slog.Logger) *StoredSource {
	return &StoredSource{
		store:    store,
		limit:    limit,
		shuffler: shuffler,
		logger:   logger,
	}
}

// Load загружает и нормализует вопросы из хранилища.
func (s *StoredSource) Load(ctx context.Context) ([]Question, error) {
	records, err := s.store.ListQuestions(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("can not load questions from store, %w", err)
	}

	if len(records) == 0 {
		return nil, client.ErrEmptyResult
	}

	return buildQuestions(records, s.shuffler, s.logger)
}

// buildQuestions нормализует сырые записи. Непригодные записи пропускаются.
// Возвращает client.ErrEmptyResult, если не осталось ни одного вопроса.
func buildQuestions(records []models.RawQuestion, shuffler *Shuffler, logger *slog.Logger) ([]Question, error) {
	questions := make([]Question, 0, len(records))

	for i, record := range records {
		question, err := buildQuestion(record, shuffler)
		if err != nil {
			logger.Warn("skipping question record", "idx", i, "err", err)
			continue
		}

		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, client.ErrEmptyResult
	}

	return questions, nil
}

// buildQuestion декодирует тексты записи, перемешивает варианты и
// вычисляет номер правильного варианта уже после перемешивания.
func buildQuestion(record models.RawQuestion, shuffler *Shuffler) (Question, error) {
	text := html.UnescapeString(record.Question)
	if text == "" {
		return Question{}, fmt.Errorf("%w: missing question text", ErrUnusableQuestion)
	}

	correct := html.UnescapeString(record.CorrectAnswer)

	options := make([]string, 0, len(record.IncorrectAnswers)+1)
	options = append(options, correct)

	for _, answer := range record.IncorrectAnswers {
		options = append(options, html.UnescapeString(answer))
	}

	if len(options) != OptionsCount {
		return Question{}, fmt.Errorf("%w: need %d options, got %d", ErrUnusableQuestion, OptionsCount, len(options))
	}

	unique := slices.Clone(options)
	slices.Sort(unique)
	if len(slices.Compact(unique)) != len(options) {
		return Question{}, fmt.Errorf("%w: options are not distinct", ErrUnusableQuestion)
	}

	shuffler.Shuffle(options)

	return Question{
		Text:       text,
		Options:    options,
		Correct:    slices.Index(options, correct) + 1,
		Category:   html.UnescapeString(record.Category),
		Difficulty: record.Difficulty,
	}, nil
}
