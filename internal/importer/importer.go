package importer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/letsssgooo/triviaQuiz/internal/client"
	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
	"github.com/letsssgooo/triviaQuiz/internal/storage"
)

// Report - итог одного импорта.
type Report struct {
	Fetched  int
	Inserted int
	Total    int
}

// Importer переносит вопросы из банка в хранилище.
type Importer struct {
	client   client.Client
	store    storage.Storage
	logger   *slog.Logger
	parallel int
}

// New создаёт Importer, который делает до parallel запросов к банку одновременно.
func New(c client.Client, store storage.Storage, parallel int, logger *slog.Logger) *Importer {
	return &Importer{
		client:   c,
		store:    store,
		logger:   logger,
		parallel: max(parallel, 1),
	}
}

// Run выполняет rounds запросов к банку с параметрами params и сохраняет
// полученные записи как есть. Повторы отбрасываются хранилищем.
// Если хоть один запрос упал, остальные отменяются и ничего не сохраняется.
func (im *Importer) Run(ctx context.Context, params client.Params, rounds int) (Report, error) {
	var report Report

	pages, err := im.fetch(ctx, params, max(rounds, 1))
	if err != nil {
		return report, err
	}

	for _, records := range pages {
		inserted, err := im.store.SaveQuestions(ctx, records)
		if err != nil {
			return report, fmt.Errorf("can not save questions: %w", err)
		}

		report.Fetched += len(records)
		report.Inserted += inserted
	}

	total, err := im.store.CountQuestions(ctx)
	if err != nil {
		return report, fmt.Errorf("can not count questions: %w", err)
	}

	report.Total = total

	im.logger.Info("questions imported",
		"rounds", len(pages), "fetched", report.Fetched, "inserted", report.Inserted, "total", report.Total)

	return report, nil
}

// fetch делает rounds запросов, не больше im.parallel одновременно.
// Каждый раунд пишет только в свою ячейку pages.
func (im *Importer) fetch(ctx context.Context, params client.Params, rounds int) ([][]models.RawQuestion, error) {
	pages := make([][]models.RawQuestion, rounds)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.parallel)

	for round := range rounds {
		g.Go(func() error {
			records, err := im.client.GetQuestions(gctx, params)
			if err != nil {
				return fmt.Errorf("can not fetch questions, round %d: %w", round+1, err)
			}

			im.logger.Debug("import round fetched", "round", round+1, "fetched", len(records))
			pages[round] = records

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pages, nil
}
