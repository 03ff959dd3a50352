package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
	"response_code": 0,
	"results": [
		{
			"category": "Entertainment: Books",
			"type": "multiple",
			"difficulty": "easy",
			"question": "Who wrote &quot;Harry Potter&quot;?",
			"correct_answer": "J. K. Rowling",
			"incorrect_answers": ["J. R. R. Tolkien", "Terry Pratchett", "Daniel Radcliffe"]
		}
	]
}`

func newBankServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()

	var got http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r.Clone(context.Background())
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &got
}

func TestGetQuestions_Success(t *testing.T) {
	srv, req := newBankServer(t, http.StatusOK, okBody)
	c := NewHTTPClient(srv.URL, time.Second)

	questions, err := c.GetQuestions(context.Background(), Params{
		Amount:     20,
		Category:   10,
		Difficulty: "easy",
		Type:       "multiple",
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, "/api.php", req.URL.Path)
	assert.Equal(t, "20", req.URL.Query().Get("amount"))
	assert.Equal(t, "10", req.URL.Query().Get("category"))
	assert.Equal(t, "easy", req.URL.Query().Get("difficulty"))
	assert.Equal(t, "multiple", req.URL.Query().Get("type"))

	// тексты не декодируются клиентом
	assert.Equal(t, "Who wrote &quot;Harry Potter&quot;?", questions[0].Question)
	assert.Equal(t, "J. K. Rowling", questions[0].CorrectAnswer)
	assert.Len(t, questions[0].IncorrectAnswers, 3)
	assert.Equal(t, "easy", questions[0].Difficulty)
}

func TestGetQuestions_OmitsZeroParams(t *testing.T) {
	srv, req := newBankServer(t, http.StatusOK, okBody)
	c := NewHTTPClient(srv.URL+"/", time.Second)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 5})
	require.NoError(t, err)

	query := req.URL.Query()
	assert.Equal(t, "5", query.Get("amount"))
	assert.False(t, query.Has("category"))
	assert.False(t, query.Has("difficulty"))
	assert.False(t, query.Has("type"))
}

func TestGetQuestions_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: ErrTransport,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    ``,
			wantErr: ErrTransport,
		},
		{
			name:    "empty results",
			status:  http.StatusOK,
			body:    `{"response_code": 0, "results": []}`,
			wantErr: ErrEmptyResult,
		},
		{
			name:    "absent results",
			status:  http.StatusOK,
			body:    `{"response_code": 0}`,
			wantErr: ErrEmptyResult,
		},
		{
			name:    "no results response code",
			status:  http.StatusOK,
			body:    `{"response_code": 1, "results": []}`,
			wantErr: ErrEmptyResult,
		},
		{
			name:    "rate limit response code",
			status:  http.StatusOK,
			body:    `{"response_code": 5, "results": []}`,
			wantErr: ErrTransport,
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `{invalid json}`,
			wantErr: ErrTransport,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newBankServer(t, tc.status, tc.body)
			c := NewHTTPClient(srv.URL, time.Second)

			questions, err := c.GetQuestions(context.Background(), Params{Amount: 1})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, questions)
		})
	}
}

func TestGetQuestions_StatusErrorCarriesCode(t *testing.T) {
	srv, _ := newBankServer(t, http.StatusInternalServerError, ``)
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 1})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestGetQuestions_ResponseCodeError(t *testing.T) {
	srv, _ := newBankServer(t, http.StatusOK, `{"response_code": 2, "results": []}`)
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 1})

	var codeErr *ResponseCodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, ResponseCodeInvalidParameter, codeErr.Code)
	assert.Contains(t, err.Error(), "invalid parameter")
}

func TestGetQuestions_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 1})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestGetQuestions_MalformedBaseURL(t *testing.T) {
	c := NewHTTPClient("http://bad host", time.Second)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 1})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestGetQuestions_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, 50*time.Millisecond)

	_, err := c.GetQuestions(context.Background(), Params{Amount: 1})
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient("", 0)

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, defaultTimeout, c.timeout)
}
