package quiz

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Status — статус загрузки вопросов в контроллере.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// View - снимок состояния для отрисовки.
type View struct {
	Status     Status
	Err        error
	SessionID  string
	State      State
	Index      int
	Total      int
	Question   Question
	Selected   int // 0 - ответ не выбран
	Locked     bool
	Score      int
	Finished   bool
	Answers    []Answer
	Questions  []Question
	Generation uint64
}

// Controller связывает источник вопросов с сессией.
// Каждый Start увеличивает поколение сессии, результаты загрузок
// старых поколений отбрасываются.
type Controller struct {
	source     Source
	logger     *slog.Logger
	session    *Session
	generation uint64
	cancelLoad context.CancelFunc
	status     Status
	err        error
	mu         sync.Mutex
}

// NewController создаёт контроллер в статусе StatusIdle.
func NewController(source Source, logger *slog.Logger) *Controller {
	return &Controller{
		source:  source,
		logger:  logger,
		session: NewSession(),
		status:  StatusIdle,
	}
}

// Start начинает загрузку вопросов для новой сессии.
// Незавершённая загрузка предыдущего поколения отменяется.
// Возвращает канал, в который придёт ровно одно значение: nil при успехе,
// ошибка загрузки или ErrStaleLoad, если загрузку вытеснил новый Start.
func (c *Controller) Start(ctx context.Context) <-chan error {
	c.mu.Lock()

	c.generation++
	generation := c.generation

	if c.cancelLoad != nil {
		c.cancelLoad()
	}

	loadCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	c.status = StatusLoading
	c.err = nil

	c.mu.Unlock()

	c.logger.Debug("loading questions", "generation", generation)

	done := make(chan error, 1)

	go func() {
		defer close(done)
		defer cancel()

		questions, err := c.source.Load(loadCtx)
		done <- c.finishLoad(generation, questions, err)
	}()

	return done
}

// Reset перезапускает квиз со свежей загрузкой вопросов.
func (c *Controller) Reset(ctx context.Context) <-chan error {
	return c.Start(ctx)
}

// finishLoad применяет результат загрузки поколения generation.
func (c *Controller) finishLoad(generation uint64, questions []Question, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("discarding stale load", "generation", generation, "current", c.generation)
		return ErrStaleLoad
	}

	c.cancelLoad = nil

	if err == nil {
		err = c.session.Start(questions)
	}

	if err != nil {
		c.status = StatusFailed
		c.err = err
		c.logger.Warn("failed to load questions", "generation", generation, "err", err)

		return err
	}

	c.status = StatusReady
	c.logger.Info("quiz started",
		"session", c.session.ID(),
		"generation", generation,
		"questions", c.session.Len(),
	)

	return nil
}

// SubmitAnswer регистрирует ответ на текущий вопрос.
func (c *Controller) SubmitAnswer(position int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return false, ErrNotInProgress
	}

	return c.session.SubmitAnswer(position)
}

// Advance переходит к следующему вопросу.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusReady {
		return ErrNotInProgress
	}

	if err := c.session.Advance(); err != nil {
		return err
	}

	if c.session.Finished() {
		c.logger.Info("quiz finished",
			"session", c.session.ID(),
			"score", c.session.Score(),
			"total", c.session.Len(),
		)
	}

	return nil
}

// Result возвращает итог текущей сессии.
func (c *Controller) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session.Result()
}

// Snapshot возвращает копию состояния для отрисовки.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session

	view := View{
		Status:     c.status,
		Err:        c.err,
		SessionID:  s.ID(),
		State:      s.State(),
		Index:      s.Index(),
		Total:      s.Len(),
		Locked:     s.Locked(),
		Score:      s.Score(),
		Finished:   s.Finished(),
		Answers:    s.Answers(),
		Questions:  slices.Clone(s.questions),
		Generation: c.generation,
	}

	view.Selected, _ = s.Selected()

	if question, ok := s.Current(); ok {
		question.Options = slices.Clone(question.Options)
		view.Question = question
	}

	return view
}
