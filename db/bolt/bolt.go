package bolt

import (
	"context"
	"time"

	bolt "github.com/boltdb/bolt"
)

// BoltDB is an embedded single-file datastore.
type BoltDB struct {
	Conn *bolt.DB
	Path string
}

func NewBoltDB(path string) *BoltDB {
	return &BoltDB{Path: path}
}

func (b *BoltDB) Connect() error {
	conn, err := bolt.Open(b.Path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}
	b.Conn = conn
	return nil
}

func (b *BoltDB) Disconnect() error {
	if b.Conn != nil {
		return b.Conn.Close()
	}
	return nil
}

// Ping runs an empty read transaction.
func (b *BoltDB) Ping(_ context.Context) error {
	return b.Conn.View(func(*bolt.Tx) error { return nil })
}
