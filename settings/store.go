package settings

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when the option was never written
var ErrNotFound = errors.New("option not found")

// Store is a flat key-value option storage
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// Closer is implemented by stores holding a connection
type Closer interface {
	Close() error
}

// Store drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// UnsupportedDriverError is returned by Open for an unknown driver name
type UnsupportedDriverError struct {
	Driver string
}

func (e UnsupportedDriverError) Error() string {
	return fmt.Sprintf("unsupported settings driver %q", e.Driver)
}
