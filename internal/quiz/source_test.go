package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/triviaQuiz/internal/client"
	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeClient struct {
	records []models.RawQuestion
	err     error
	params  client.Params
	calls   int
}

func (f *fakeClient) GetQuestions(_ context.Context, params client.Params) ([]models.RawQuestion, error) {
	f.calls++
	f.params = params

	return f.records, f.err
}

type fakeStore struct {
	records []models.RawQuestion
	err     error
	limit   int
}

func (f *fakeStore) ListQuestions(_ context.Context, limit int) ([]models.RawQuestion, error) {
	f.limit = limit

	return f.records, f.err
}

func rawRecord(question, correct string, incorrect ...string) models.RawQuestion {
	return models.RawQuestion{
		Category:         "General Knowledge",
		Type:             "multiple",
		Difficulty:       "easy",
		Question:         question,
		CorrectAnswer:    correct,
		IncorrectAnswers: incorrect,
	}
}

func TestBankSource_Load(t *testing.T) {
	fc := &fakeClient{
		records: []models.RawQuestion{
			rawRecord("What is 2+2?", "4", "3", "5", "6"),
			rawRecord("Capital of France?", "Paris", "Berlin", "Rome", "Madrid"),
		},
	}
	params := client.Params{Amount: 2, Category: 10, Difficulty: "easy", Type: "multiple"}

	source := NewBankSource(fc, params, NewShuffler(42), discardLogger)

	questions, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, params, fc.params)

	assert.Equal(t, "What is 2+2?", questions[0].Text)
	assert.Equal(t, "4", questions[0].CorrectOption())
	assert.Equal(t, "Paris", questions[1].CorrectOption())
	assert.Equal(t, "easy", questions[1].Difficulty)
}

func TestBankSource_DecodesEntities(t *testing.T) {
	fc := &fakeClient{
		records: []models.RawQuestion{
			rawRecord(
				"Who wrote &quot;Hamlet&quot;?",
				"William Shakespeare",
				"Charles Dickens",
				"Jane Austen &amp; co",
				"&#039;Anonymous&#039;",
			),
		},
	}

	questions, err := NewBankSource(fc, client.Params{Amount: 1}, NewShuffler(7), discardLogger).
		Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, `Who wrote "Hamlet"?`, q.Text)
	assert.Contains(t, q.Options, "Jane Austen & co")
	assert.Contains(t, q.Options, "'Anonymous'")
	assert.Equal(t, "William Shakespeare", q.CorrectOption())
}

func TestBankSource_CorrectPositionTracksShuffle(t *testing.T) {
	records := make([]models.RawQuestion, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, rawRecord("Q &amp; A", "right &lt;1&gt;", "w1", "w2", "w3"))
	}

	fc := &fakeClient{records: records}
	shuffler := NewShuffler(12345)

	questions, err := NewBankSource(fc, client.Params{Amount: 50}, shuffler, discardLogger).
		Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 50)

	positions := make(map[int]struct{})

	for _, q := range questions {
		require.Len(t, q.Options, OptionsCount)
		require.GreaterOrEqual(t, q.Correct, 1)
		require.LessOrEqual(t, q.Correct, len(q.Options))
		assert.Equal(t, "right <1>", q.Options[q.Correct-1])

		count := 0
		for _, option := range q.Options {
			if option == "right <1>" {
				count++
			}
		}
		assert.Equal(t, 1, count)

		positions[q.Correct] = struct{}{}
	}

	// за 50 перемешиваний правильный ответ должен побывать не только на первом месте
	assert.Greater(t, len(positions), 1)
}

func TestBankSource_DeterministicWithSeed(t *testing.T) {
	records := []models.RawQuestion{
		rawRecord("Q1", "a", "b", "c", "d"),
		rawRecord("Q2", "e", "f", "g", "h"),
	}

	first, err := NewBankSource(&fakeClient{records: records}, client.Params{}, NewShuffler(99), discardLogger).
		Load(context.Background())
	require.NoError(t, err)

	second, err := NewBankSource(&fakeClient{records: records}, client.Params{}, NewShuffler(99), discardLogger).
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBankSource_DoesNotMutateRecords(t *testing.T) {
	incorrect := []string{"b", "c", "d"}
	fc := &fakeClient{records: []models.RawQuestion{rawRecord("Q", "a", incorrect...)}}

	_, err := NewBankSource(fc, client.Params{}, NewShuffler(3), discardLogger).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "d"}, incorrect)
}

func TestBankSource_SkipsUnusableRecords(t *testing.T) {
	fc := &fakeClient{
		records: []models.RawQuestion{
			rawRecord("True or false?", "True", "False"),
			rawRecord("Duplicate?", "a", "a", "b", "c"),
			rawRecord("", "a", "b", "c", "d"),
			rawRecord("Good one", "a", "b", "c", "d"),
		},
	}

	questions, err := NewBankSource(fc, client.Params{}, NewShuffler(1), discardLogger).
		Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Good one", questions[0].Text)
}

func TestBankSource_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		client  *fakeClient
		wantErr error
	}{
		{
			name:    "transport error",
			client:  &fakeClient{err: &client.StatusError{StatusCode: 500, URL: "http://bank"}},
			wantErr: client.ErrTransport,
		},
		{
			name:    "empty result from client",
			client:  &fakeClient{err: client.ErrEmptyResult},
			wantErr: client.ErrEmptyResult,
		},
		{
			name:    "no usable records",
			client:  &fakeClient{records: []models.RawQuestion{rawRecord("Q", "True", "False")}},
			wantErr: client.ErrEmptyResult,
		},
		{
			name:    "nil records",
			client:  &fakeClient{},
			wantErr: client.ErrEmptyResult,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := NewBankSource(tc.client, client.Params{}, NewShuffler(1), discardLogger).
				Load(context.Background())
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, questions)
		})
	}
}

func TestBankSource_StatusErrorPreserved(t *testing.T) {
	fc := &fakeClient{err: &client.StatusError{StatusCode: 500, URL: "http://bank"}}

	_, err := NewBankSource(fc, client.Params{}, NewShuffler(1), discardLogger).Load(context.Background())

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 500, statusErr.StatusCode)
}

func TestStoredSource_Load(t *testing.T) {
	store := &fakeStore{
		records: []models.RawQuestion{rawRecord("Stored &amp; loaded", "x", "y", "z", "w")},
	}

	questions, err := NewStoredSource(store, 20, NewShuffler(5), discardLogger).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, 20, store.limit)
	assert.Equal(t, "Stored & loaded", questions[0].Text)
	assert.Equal(t, "x", questions[0].CorrectOption())
}

func TestStoredSource_Errors(t *testing.T) {
	storeErr := errors.New("connection refused")

	_, err := NewStoredSource(&fakeStore{err: storeErr}, 5, NewShuffler(1), discardLogger).
		Load(context.Background())
	assert.ErrorIs(t, err, storeErr)

	_, err = NewStoredSource(&fakeStore{}, 5, NewShuffler(1), discardLogger).
		Load(context.Background())
	assert.ErrorIs(t, err, client.ErrEmptyResult)
}

func TestStaticSource_Load(t *testing.T) {
	source := NewStaticSource()

	questions, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, len(legacyQuestions))

	for i, q := range questions {
		legacy := legacyQuestions[i]

		assert.Equal(t, legacy.Question, q.Text)
		assert.Equal(t, []string{legacy.Option1, legacy.Option2, legacy.Option3, legacy.Option4}, q.Options)
		assert.Equal(t, legacy.Ans, q.Correct)
		assert.GreaterOrEqual(t, q.Correct, 1)
		assert.LessOrEqual(t, q.Correct, OptionsCount)
	}

	// повторная загрузка возвращает тот же порядок и независимую копию
	questions[0].Options[0] = "changed"

	again, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, legacyQuestions[0].Option1, again[0].Options[0])
}

func TestShuffler_KeepsElements(t *testing.T) {
	options := []string{"a", "b", "c", "d"}

	NewShuffler(0).Shuffle(options)

	sorted := slices.Clone(options)
	slices.Sort(sorted)
	assert.Equal(t, []string{"a", "b", "c", "d"}, sorted)
}
