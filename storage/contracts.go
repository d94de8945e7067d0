package storage

import (
	"context"
	"time"

	"feedfilter/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB - подмножество pgxpool.Pool, которое нужно хранилищу.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

type BuildStorage interface {
	RecordBuild(ctx context.Context, event models.BuildEvent) error
	RecentBuilds(ctx context.Context, feedName string, since time.Time) ([]models.BuildEvent, error)
	Close()
}
