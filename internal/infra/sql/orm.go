package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ORM is the chainable subset of gorm the repositories use. Every call
// returns a new ORM, so a chain can be branched safely.
type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Delete(value any, conds ...any) ORM
	Exec(sql string, values ...any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Offset(offset int) ORM
	Order(value any) ORM
	Save(value any) ORM
	Updates(values any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM
	Transaction(fc func(tx ORM) error, opts ...*sql.TxOptions) error
	Ping(ctx context.Context) error

	Error() error
	RowsAffected() int64
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicatedKey  = errors.New("duplicated key")
)

var _ ORM = (*DB)(nil)

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
	// applied to every context handed to WithContext, zero means none
	timeout time.Duration
}

func (d DB) chain(tx *gorm.DB) ORM {
	d.DB = tx
	return &d
}

// traced tags the span of the current statement with the operation name.
func (d DB) traced(operation string) DB {
	ctx := d.DB.Statement.Context
	if ctx == nil {
		return d
	}
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("db.system", d.DB.Dialector.Name()),
			attribute.String("db.operation", operation),
		)
	}
	return d
}

func (d DB) Error() error {
	err := d.DB.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicatedKey
	default:
		return fmt.Errorf("database error: %w", err)
	}
}

func (d DB) RowsAffected() int64 {
	return d.DB.RowsAffected
}

func (d DB) AutoMigrate(dst ...any) error {
	if !d.autoMigrationEnabled {
		return nil
	}
	return d.DB.AutoMigrate(dst...)
}

func (d DB) Count(count *int64) ORM {
	return d.chain(d.traced("count").DB.Count(count))
}

func (d DB) Create(value any) ORM {
	return d.chain(d.traced("create").DB.Create(value))
}

func (d DB) Delete(value any, conds ...any) ORM {
	return d.chain(d.traced("delete").DB.Delete(value, conds...))
}

func (d DB) Exec(sql string, values ...any) ORM {
	return d.chain(d.traced("exec").DB.Exec(sql, values...))
}

func (d DB) Find(dest any, conds ...any) ORM {
	return d.chain(d.traced("find").DB.Find(dest, conds...))
}

func (d DB) First(dest any, conds ...any) ORM {
	return d.chain(d.traced("first").DB.First(dest, conds...))
}

func (d DB) Save(value any) ORM {
	return d.chain(d.traced("save").DB.Save(value))
}

func (d DB) Updates(values any) ORM {
	return d.chain(d.traced("update").DB.Updates(values))
}

func (d DB) Limit(limit int) ORM {
	return d.chain(d.DB.Limit(limit))
}

func (d DB) Model(value any) ORM {
	return d.chain(d.DB.Model(value))
}

func (d DB) Offset(offset int) ORM {
	return d.chain(d.DB.Offset(offset))
}

func (d DB) Order(value any) ORM {
	return d.chain(d.DB.Order(value))
}

func (d DB) Where(query any, args ...any) ORM {
	return d.chain(d.DB.Where(query, args...))
}

func (d DB) WithContext(ctx context.Context) ORM {
	if d.timeout <= 0 {
		return d.chain(d.DB.WithContext(ctx))
	}

	// the statement outlives this call, so the cancel func is released
	// once the deadline passes
	timeoutCtx, cancel := context.WithTimeout(ctx, d.timeout)
	context.AfterFunc(timeoutCtx, cancel)
	return d.chain(d.DB.WithContext(timeoutCtx))
}

func (d DB) Transaction(fc func(ORM) error, opts ...*sql.TxOptions) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fc(&DB{DB: tx, autoMigrationEnabled: d.autoMigrationEnabled, timeout: d.timeout})
	}, opts...)
}

// Ping checks the pool behind the ORM, used by the readiness probe.
func (d DB) Ping(ctx context.Context) error {
	pool, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}
	if err := pool.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}
