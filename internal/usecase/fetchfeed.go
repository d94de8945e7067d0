package usecase

import (
	"context"
	"io"
	"time"

	"feedfilter/internal/cache"
	"feedfilter/internal/domain"
	"feedfilter/internal/models"
)

// FeedFetcher — интерфейс для получения данных из источника.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser — интерфейс для парсинга данных в доменную модель.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) (*domain.SourceFeed, error)
}

// FeedSerializer — интерфейс для сериализации выходного документа.
type FeedSerializer interface {
	Serialize(doc domain.OutputDocument) ([]byte, error)
}

// FeedCatalog — таблица известных фидов.
type FeedCatalog interface {
	Lookup(name string) (domain.FeedConfig, bool)
}

// FeedCache — хранилище собранных документов.
type FeedCache interface {
	Get(name string) (cache.Entry, bool)
	Put(name string, doc domain.OutputDocument, now time.Time) bool
}

// BuildRecorder получает событие после каждой успешной пересборки.
type BuildRecorder interface {
	RecordBuild(ctx context.Context, event models.BuildEvent) error
}
