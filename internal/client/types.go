package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

// Params содержит параметры запроса к банку вопросов.
// Нулевые значения Category, Difficulty и Type не передаются в запрос.
type Params struct {
	Amount     int
	Category   int
	Difficulty string
	Type       string
}

// Client определяет интерфейс клиента банка вопросов.
type Client interface {
	// GetQuestions получает набор вопросов по параметрам params.
	// Возвращает ошибку ErrTransport при неуспешном ответе и
	// ErrEmptyResult, если банк не вернул ни одного вопроса.
	GetQuestions(ctx context.Context, params Params) ([]models.RawQuestion, error)
}

// Ошибки банка вопросов
var (
	ErrTransport   = errors.New("question bank transport error")
	ErrEmptyResult = errors.New("question bank returned no questions")
)

// StatusError описывает ответ банка с неуспешным HTTP статусом.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status code %d for %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// ResponseCodeError описывает ответ Open Trivia DB с ненулевым response_code.
type ResponseCodeError struct {
	Code int
}

func (e *ResponseCodeError) Error() string {
	return fmt.Sprintf("question bank response code %d: %s", e.Code, responseCodeText(e.Code))
}

func (e *ResponseCodeError) Unwrap() error {
	return ErrTransport
}

// Коды ответа Open Trivia DB
const (
	ResponseCodeSuccess          = 0
	ResponseCodeNoResults        = 1
	ResponseCodeInvalidParameter = 2
	ResponseCodeTokenNotFound    = 3
	ResponseCodeTokenEmpty       = 4
	ResponseCodeRateLimit        = 5
)

func responseCodeText(code int) string {
	switch code {
	case ResponseCodeNoResults:
		return "no results"
	case ResponseCodeInvalidParameter:
		return "invalid parameter"
	case ResponseCodeTokenNotFound:
		return "token not found"
	case ResponseCodeTokenEmpty:
		return "token empty"
	case ResponseCodeRateLimit:
		return "rate limit"
	default:
		return "unknown"
	}
}

// DefaultBaseURL - адрес Open Trivia DB.
const DefaultBaseURL = "https://opentdb.com"

// Таймаут
const defaultTimeout = 10 * time.Second
