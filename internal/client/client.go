package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

const apiPath = "/api.php"

// HTTPClient реализует Client через HTTP API Open Trivia DB.
type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPClient создаёт нового HTTP клиента банка вопросов с адресом baseURL.
// Если timeout не положительный, используется таймаут по умолчанию.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// GetQuestions получает вопросы из банка одним запросом.
// Возвращает слайс RawQuestion с текстами в исходном (закодированном) виде.
func (c *HTTPClient) GetQuestions(ctx context.Context, params Params) ([]models.RawQuestion, error) {
	query := url.Values{}
	query.Set("amount", strconv.Itoa(params.Amount))

	if params.Category != 0 {
		query.Set("category", strconv.Itoa(params.Category))
	}

	if params.Difficulty != "" {
		query.Set("difficulty", params.Difficulty)
	}

	if params.Type != "" {
		query.Set("type", params.Type)
	}

	ctx, cancelFunc := context.WithTimeout(ctx, c.timeout)
	defer cancelFunc()

	return c.doRequest(ctx, query)
}

// doRequest выполняет запрос к API банка вопросов.
// Возвращает результаты запроса в случае успеха.
func (c *HTTPClient) doRequest(ctx context.Context, query url.Values) ([]models.RawQuestion, error) {
	link := c.baseURL + apiPath + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for url %s: %w", ErrTransport, link, err)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to do get request for url %s: %w", ErrTransport, link, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: link}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	var result struct {
		ResponseCode int                  `json:"response_code"`
		Results      []models.RawQuestion `json:"results"`
	}

	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err)
	}

	switch result.ResponseCode {
	case ResponseCodeSuccess:
	case ResponseCodeNoResults:
		return nil, ErrEmptyResult
	default:
		return nil, &ResponseCodeError{Code: result.ResponseCode}
	}

	if len(result.Results) == 0 {
		return nil, ErrEmptyResult
	}

	return result.Results, nil
}
