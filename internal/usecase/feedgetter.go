package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedfilter/internal/cache"
	"feedfilter/internal/domain"
	"feedfilter/internal/metrics"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultFetchTimeout  = 20 * time.Second
	DefaultRecordTimeout = 5 * time.Second
)

type FeedGetterUseCase struct {
	catalog       FeedCatalog
	cache         FeedCache
	fetcher       FeedFetcher
	parser        FeedParser
	assembler     *Assembler
	serializer    FeedSerializer
	recorders     []BuildRecorder
	ttl           time.Duration
	fetchTimeout  time.Duration
	recordTimeout time.Duration
	clock         func() time.Time
	log           *slog.Logger
	group         singleflight.Group
}

type Option func(*FeedGetterUseCase)

func WithTTL(ttl time.Duration) Option {
	return func(uc *FeedGetterUseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

func WithFetchTimeout(timeout time.Duration) Option {
	return func(uc *FeedGetterUseCase) {
		if timeout > 0 {
			uc.fetchTimeout = timeout
		}
	}
}

// WithRecordTimeout ограничивает время записи события сборки в хранилище и Kafka.
func WithRecordTimeout(timeout time.Duration) Option {
	return func(uc *FeedGetterUseCase) {
		if timeout > 0 {
			uc.recordTimeout = timeout
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(uc *FeedGetterUseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

func WithRecorders(recorders ...BuildRecorder) Option {
	return func(uc *FeedGetterUseCase) {
		uc.recorders = append(uc.recorders, recorders...)
	}
}

func NewFeedGetterUseCase(
	catalog FeedCatalog,
	feedCache FeedCache,
	fetcher FeedFetcher,
	parser FeedParser,
	serializer FeedSerializer,
	log *slog.Logger,
	opts ...Option,
) *FeedGetterUseCase {
	uc := &FeedGetterUseCase{
		catalog:       catalog,
		cache:         feedCache,
		fetcher:       fetcher,
		parser:        parser,
		serializer:    serializer,
		ttl:           cache.DefaultTTL,
		fetchTimeout:  DefaultFetchTimeout,
		recordTimeout: DefaultRecordTimeout,
		clock:         time.Now,
		log:           log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.assembler = NewAssembler(log, uc.clock)
	return uc
}

// GetFeed возвращает сериализованный отфильтрованный фид. Свежая запись кэша
// отдается без обращения к источнику; устаревшая или отсутствующая пересобирается
// не более одного раза на имя фида одновременно.
func (uc *FeedGetterUseCase) GetFeed(ctx context.Context, name string) ([]byte, error) {
	cfg, ok := uc.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFeed, name)
	}
	log := uc.log.With(slog.String("feed", name))

	doc, result := uc.cached(name)
	metrics.RecordLookup(name, string(result))
	switch result {
	case lookupHit:
		log.Debug("Feed cache hit")
		return uc.serialize(doc)
	case lookupStale:
		log.Info("Feed cache entry is stale")
	default:
		log.Info("Feed cache miss")
	}

	v, err, shared := uc.group.Do(name, func() (any, error) {
		if doc, result := uc.cached(name); result == lookupHit {
			return doc, nil
		}
		return uc.ProcessFeed(context.WithoutCancel(ctx), cfg)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("Shared rebuild result with concurrent request")
	}
	return uc.serialize(v.(domain.OutputDocument))
}

// lookupResult совпадает со значением метки result в feedfilter_cache_lookups_total.
type lookupResult string

const (
	lookupHit   lookupResult = "hit"
	lookupMiss  lookupResult = "miss"
	lookupStale lookupResult = "stale"
)

func (uc *FeedGetterUseCase) cached(name string) (domain.OutputDocument, lookupResult) {
	entry, ok := uc.cache.Get(name)
	if !ok {
		return domain.OutputDocument{}, lookupMiss
	}
	if cache.IsStale(&entry, uc.clock(), uc.ttl) {
		return domain.OutputDocument{}, lookupStale
	}
	return entry.Document, lookupHit
}

func (uc *FeedGetterUseCase) serialize(doc domain.OutputDocument) ([]byte, error) {
	payload, err := uc.serializer.Serialize(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize feed: %w", err)
	}
	return payload, nil
}
