package sql

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	_queryTimeout = 5 * time.Second
	_openRetries  = 10
	_retryDelay   = 5 * time.Second
)

var _ Database = (*PostgreDatabase)(nil)

type PostgreDatabase struct {
	url  string
	Conn *pgxpool.Pool
}

var (
	postgreInstance *PostgreDatabase
	postgreOnce     sync.Once
)

func NewPosgreORM(dsn string, queryTimeout time.Duration) (*DB, error) {
	pass, ok := os.LookupEnv("POSBRIDGE_SERVER_POSTGRES_PASSWORD")
	if ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if queryTimeout <= 0 {
		queryTimeout = _queryTimeout
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
		timeout:              queryTimeout,
	}, nil
}

func NewPosgreDatabase(url string) *PostgreDatabase {
	postgreOnce.Do(func() {
		postgreInstance = &PostgreDatabase{
			url: url,
		}
	})

	return postgreInstance
}

// Open waits for postgres to accept connections, so the ORM that follows
// can run its migrations right away.
func (d *PostgreDatabase) Open(ctx context.Context) error {
	for try := range _openRetries {
		conn, err := pgxpool.New(ctx, d.url)
		if err == nil {
			d.Conn = conn
			if err = d.Ping(ctx); err == nil {
				return nil
			}
			conn.Close()
			d.Conn = nil
		}

		slog.Warn("postgres not ready",
			slog.Int("attempt", try+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(_retryDelay):
		}
	}

	return fmt.Errorf("imposible to connect to database after %d retries", _openRetries)
}

func (d *PostgreDatabase) Close() {
	if d.Conn != nil {
		d.Conn.Close()
	}
}

func (d *PostgreDatabase) Ping(ctx context.Context) error {
	pingCtx, cancelFn := context.WithTimeout(ctx, _queryTimeout)
	defer cancelFn()

	return d.Conn.Ping(pingCtx)
}
