package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedfilter/internal/domain"
	"feedfilter/internal/metrics"
	"feedfilter/internal/models"
)

// ProcessFeed выполняет полный цикл пересборки: получение, парсинг, фильтрация и
// сохранение в кэш. При ошибке получения кэш не трогается.
func (uc *FeedGetterUseCase) ProcessFeed(ctx context.Context, cfg domain.FeedConfig) (domain.OutputDocument, error) {
	start := time.Now()
	log := uc.log.With(
		slog.String("component", "feed-processor"),
		slog.String("feed", cfg.Name),
		slog.String("url", cfg.SourceURL),
	)
	log.Info("Processing feed started")

	fetchCtx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
	defer cancel()

	reader, err := uc.fetcher.Fetch(fetchCtx, cfg.SourceURL)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		metrics.RecordRebuild(cfg.Name, "fetch_failed", time.Since(start).Seconds())
		return domain.OutputDocument{}, fmt.Errorf("%w: fetch %s: %w", domain.ErrFetchFailed, cfg.Name, err)
	}
	defer reader.Close()

	log.Debug("Feed fetched successfully", slog.String("stage", "fetch"))

	src, err := uc.parser.Parse(fetchCtx, reader)
	if err != nil {
		log.Error("Feed parsing error",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		metrics.RecordRebuild(cfg.Name, "parse_failed", time.Since(start).Seconds())
		return domain.OutputDocument{}, fmt.Errorf("%w: parse %s: %w", domain.ErrFetchFailed, cfg.Name, err)
	}

	log.Debug("Feed parsed successfully",
		slog.String("stage", "parse"),
		slog.Int("items_parsed", len(src.Entries)),
	)

	doc, stats := uc.assembler.Assemble(cfg, *src)
	builtAt := uc.clock()
	if !uc.cache.Put(cfg.Name, doc, builtAt) {
		log.Debug("Newer cache entry already stored", slog.String("stage", "store"))
	}

	duration := time.Since(start)
	metrics.RecordRebuild(cfg.Name, "ok", duration.Seconds())
	metrics.RecordEntries(cfg.Name, stats.Kept, stats.Filtered, stats.Malformed)

	log.Info("Feed processing completed successfully",
		slog.Int("items_found", stats.Total),
		slog.Int("items_kept", stats.Kept),
		slog.Int("items_filtered", stats.Filtered),
		slog.Int("items_malformed", stats.Malformed),
		slog.Duration("duration", duration),
	)

	uc.notify(ctx, log, models.BuildEvent{
		FeedName:     cfg.Name,
		SourceURL:    cfg.SourceURL,
		ItemCount:    stats.Kept,
		DroppedCount: stats.Filtered + stats.Malformed,
		BuiltAt:      builtAt,
	})
	return doc, nil
}

// notify передает событие сборки наблюдателям; их ошибки только логируются.
// Запись идет под собственным таймаутом: бюджет загрузки к этому моменту уже
// может быть исчерпан.
func (uc *FeedGetterUseCase) notify(ctx context.Context, log *slog.Logger, event models.BuildEvent) {
	if len(uc.recorders) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.recordTimeout)
	defer cancel()

	for _, r := range uc.recorders {
		if err := r.RecordBuild(ctx, event); err != nil {
			log.Warn("Failed to record feed build",
				slog.String("stage", "record"),
				slog.Any("error", err),
			)
		}
	}
}
