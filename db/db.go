package db

import "context"

// DB is a datastore connection owned by the process. Supported backends are
// named by the config.DBType* constants.
type DB interface {
	Connect() error
	Disconnect() error
	Ping(ctx context.Context) error
}
