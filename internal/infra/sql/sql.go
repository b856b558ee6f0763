package sql

import "context"

// Database is a raw connection used before the ORM exists.
type Database interface {
	Open(context.Context) error
	Close()
	Ping(context.Context) error
}
