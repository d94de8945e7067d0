package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedfilter/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ BuildStorage = (*Storage)(nil)

// Storage ведет журнал пересборок фидов в Postgres. Сам кэш в БД не хранится.
type Storage struct {
	DB  DB
	log *slog.Logger
}

func NewStorage(ctx context.Context, dsn string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return New(pool, log), nil
}

func New(db DB, log *slog.Logger) *Storage {
	return &Storage{
		DB:  db,
		log: log,
	}
}

// Метод для сохранения записи о пересборке фида
func (s *Storage) RecordBuild(ctx context.Context, event models.BuildEvent) error {
	query := `
	INSERT INTO feed_builds (feed_name, source_url, item_count, dropped_count, built_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err := s.DB.Exec(ctx, query,
		event.FeedName,
		event.SourceURL,
		event.ItemCount,
		event.DroppedCount,
		event.BuiltAt,
	)
	if err != nil {
		s.log.Error(
			"Failed to insert feed build",
			slog.Any("error", err),
			slog.String("feed", event.FeedName),
		)
		return fmt.Errorf("failed to insert feed build: %w", err)
	}
	return nil
}

// Метод для выборки пересборок фида, начиная с заданного момента
func (s *Storage) RecentBuilds(ctx context.Context, feedName string, since time.Time) ([]models.BuildEvent, error) {
	query := `SELECT feed_name, source_url, item_count, dropped_count, built_at FROM feed_builds
	WHERE feed_name = $1 AND built_at >= $2 ORDER BY built_at DESC;`
	rows, err := s.DB.Query(ctx, query, feedName, since)
	if err != nil {
		s.log.Error(
			"Failed to read feed builds from database",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to read feed builds from database: %w", err)
	}
	defer rows.Close()

	builds := []models.BuildEvent{}
	for rows.Next() {
		b := models.BuildEvent{}
		err = rows.Scan(
			&b.FeedName,
			&b.SourceURL,
			&b.ItemCount,
			&b.DroppedCount,
			&b.BuiltAt,
		)
		if err != nil {
			s.log.Error(
				"Failed to scan row",
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("unable to scan row: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed builds: %w", err)
	}
	return builds, nil
}

func (s *Storage) Close() {
	s.log.Info("Closing database connection pool")
	s.DB.Close()
}
