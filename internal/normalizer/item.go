package normalizer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"feedfilter/internal/domain"
)

const contentSeparator = "<br>"

// Normalize приводит запись источника к элементу выходного фида.
func Normalize(log *slog.Logger, entry domain.RawEntry, guid domain.GUIDPolicy) (domain.OutputItem, error) {
	if strings.TrimSpace(entry.Title) == "" {
		return domain.OutputItem{}, fmt.Errorf("%w: missing title", domain.ErrMalformedEntry)
	}
	if entry.PublishedAt == nil {
		return domain.OutputItem{}, fmt.Errorf("%w: missing published time for %q", domain.ErrMalformedEntry, entry.Title)
	}

	item := domain.OutputItem{
		Title:       entry.Title,
		Link:        entry.Link,
		Description: Description(log, entry),
		Author:      entry.Author,
		Categories:  Categories(entry.Tags),
		PublishedAt: Timestamp(*entry.PublishedAt),
	}
	if guid == domain.GUIDLink {
		item.GUID = entry.Link
	}
	return item, nil
}

// Description выбирает текст описания: summary, если вариантов содержимого нет,
// иначе значения text/html вариантов через <br>.
func Description(log *slog.Logger, entry domain.RawEntry) string {
	if len(entry.ContentVariants) == 0 {
		return entry.Summary
	}
	if len(entry.ContentVariants) > 1 {
		log.Warn("More content than expected",
			slog.String("title", entry.Title),
			slog.Int("variants", len(entry.ContentVariants)),
		)
	}
	values := make([]string, 0, len(entry.ContentVariants))
	for _, c := range entry.ContentVariants {
		if c.Type == domain.HTMLContentType {
			values = append(values, c.Value)
		}
	}
	return strings.Join(values, contentSeparator)
}

// Timestamp отбрасывает доли секунды и часовой пояс.
func Timestamp(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Categories переносит term каждого тега как есть, включая пустые.
func Categories(tags []domain.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Term)
	}
	return out
}
