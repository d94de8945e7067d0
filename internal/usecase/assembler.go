package usecase

import (
	"log/slog"
	"strings"
	"time"

	"feedfilter/internal/domain"
	"feedfilter/internal/filter"
	"feedfilter/internal/normalizer"
)

// AssembleStats - счетчики одной сборки.
type AssembleStats struct {
	Total     int
	Filtered  int
	Malformed int
	Kept      int
}

type Assembler struct {
	log   *slog.Logger
	clock func() time.Time
}

func NewAssembler(log *slog.Logger, clock func() time.Time) *Assembler {
	if clock == nil {
		clock = time.Now
	}
	return &Assembler{log: log, clock: clock}
}

// Assemble фильтрует записи источника и собирает из них выходной документ.
// Битые записи пропускаются, сборка фида при этом не прерывается.
func (a *Assembler) Assemble(cfg domain.FeedConfig, src domain.SourceFeed) (domain.OutputDocument, AssembleStats) {
	log := a.log.With(
		slog.String("component", "assembler"),
		slog.String("feed", cfg.Name),
	)
	stats := AssembleStats{Total: len(src.Entries)}

	valid := make([]domain.RawEntry, 0, len(src.Entries))
	for _, entry := range src.Entries {
		if strings.TrimSpace(entry.Title) == "" {
			stats.Malformed++
			log.Warn("Skipping entry without title", slog.String("link", entry.Link))
			continue
		}
		valid = append(valid, entry)
	}

	kept := filter.Apply(log, valid, cfg.TitleDisqualifiers, cfg.TitleQualifiers, cfg.RuleOrder)
	stats.Filtered = len(valid) - len(kept)

	items := make([]domain.OutputItem, 0, len(kept))
	for _, entry := range kept {
		item, err := normalizer.Normalize(log, entry, cfg.GUID)
		if err != nil {
			stats.Malformed++
			log.Warn("Skipping malformed entry",
				slog.String("title", entry.Title),
				slog.Any("error", err),
			)
			continue
		}
		items = append(items, item)
	}
	stats.Kept = len(items)

	doc := domain.OutputDocument{
		Title:         src.Title,
		Link:          src.Link,
		Description:   src.Subtitle,
		LastBuildDate: normalizer.Timestamp(a.clock()),
		Items:         items,
	}
	return doc, stats
}
