package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Supported backend drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver string
	// Path is the SQLite file. Empty means DefaultDBPath.
	Path string
	// URL is the Postgres DSN.
	URL string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options, log logrus.FieldLogger) (KV, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	switch opts.Driver {
	case DriverSQLite, "":
		path := opts.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve db path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		log.WithField("path", path).Debug("opening sqlite store")
		s, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if opts.URL == "" {
			return nil, errors.New("postgres driver needs db.url")
		}
		log.Debug("opening postgres store")
		s, err := OpenPostgres(ctx, opts.URL, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", opts.Driver)
	}
}
