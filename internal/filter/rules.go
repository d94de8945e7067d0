// Package filter отбирает записи фида по подстрокам в заголовке.
package filter

import (
	"log/slog"
	"strings"

	"feedfilter/internal/domain"
)

// Apply прогоняет записи через оба прохода в порядке order.
// Запись, совпавшая и с дисквалификатором, и с квалификатором, всегда отбрасывается.
func Apply(log *slog.Logger, entries []domain.RawEntry, disqualifiers, qualifiers []string, order domain.RuleOrder) []domain.RawEntry {
	if order == domain.QualifyFirst {
		return Disqualify(log, Qualify(log, entries, qualifiers), disqualifiers)
	}
	return Qualify(log, Disqualify(log, entries, disqualifiers), qualifiers)
}

// Disqualify убирает записи, в заголовке которых встречается любая из подстрок.
func Disqualify(log *slog.Logger, entries []domain.RawEntry, disqualifiers []string) []domain.RawEntry {
	phrases := lowered(disqualifiers)
	out := make([]domain.RawEntry, 0, len(entries))
	for _, entry := range entries {
		if containsAny(entry.Title, phrases) {
			log.Debug("Filtered out entry",
				slog.String("decision", "filtered_out"),
				slog.String("title", entry.Title),
			)
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Qualify оставляет только записи с хотя бы одной подстрокой из qualifiers.
// Пустой список квалификаторов пропускает все записи.
func Qualify(log *slog.Logger, entries []domain.RawEntry, qualifiers []string) []domain.RawEntry {
	phrases := lowered(qualifiers)
	if len(phrases) == 0 {
		return append([]domain.RawEntry(nil), entries...)
	}
	out := make([]domain.RawEntry, 0, len(entries))
	for _, entry := range entries {
		if !containsAny(entry.Title, phrases) {
			log.Debug("Entry did not qualify",
				slog.String("decision", "not_qualified"),
				slog.String("title", entry.Title),
			)
			continue
		}
		log.Debug("Included entry",
			slog.String("decision", "included"),
			slog.String("title", entry.Title),
		)
		out = append(out, entry)
	}
	return out
}

func containsAny(title string, phrases []string) bool {
	title = strings.ToLower(title)
	for _, phrase := range phrases {
		if strings.Contains(title, phrase) {
			return true
		}
	}
	return false
}

// lowered приводит правила к нижнему регистру; пустые строки отбрасываются,
// иначе они совпадали бы с любым заголовком.
func lowered(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		out = append(out, strings.ToLower(p))
	}
	return out
}
