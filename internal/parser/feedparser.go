package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"feedfilter/internal/domain"

	"github.com/mmcdole/gofeed"
)

// FeedParser разбирает RSS, Atom и JSON Feed в доменную модель источника.
type FeedParser struct {
	parser *gofeed.Parser
	log    *slog.Logger
}

func New(log *slog.Logger) *FeedParser {
	return &FeedParser{
		parser: gofeed.NewParser(),
		log:    log,
	}
}

func (p *FeedParser) Parse(ctx context.Context, reader io.Reader) (*domain.SourceFeed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feed, err := p.parser.Parse(reader)
	if err != nil {
		p.log.Error(
			"Failed to parse feed",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := domain.SourceFeed{
		Title:    feed.Title,
		Link:     feed.Link,
		Subtitle: feed.Description,
		Entries:  make([]domain.RawEntry, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		source.Entries = append(source.Entries, toRawEntry(item))
	}
	p.log.Debug("Feed parsed",
		slog.String("feed_type", feed.FeedType),
		slog.Int("entries", len(source.Entries)),
	)
	return &source, nil
}

func toRawEntry(item *gofeed.Item) domain.RawEntry {
	entry := domain.RawEntry{
		Title:       item.Title,
		Link:        item.Link,
		Summary:     item.Description,
		Author:      authorName(item),
		PublishedAt: item.PublishedParsed,
	}
	// gofeed отдает содержимое без типа, поэтому любой непустой Content
	// считается text/html, в том числе Atom <content type="text">.
	if item.Content != "" {
		entry.ContentVariants = []domain.ContentVariant{
			{Type: domain.HTMLContentType, Value: item.Content},
		}
	}
	if len(item.Categories) > 0 {
		entry.Tags = make([]domain.Tag, 0, len(item.Categories))
		for _, c := range item.Categories {
			entry.Tags = append(entry.Tags, domain.Tag{Term: c})
		}
	}
	return entry
}

func authorName(item *gofeed.Item) string {
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
