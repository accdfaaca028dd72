package repository

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

var (
	companiesBucket = []byte("companies")
	invoicesBucket  = []byte("invoices")
)

// InitBoltBuckets creates the companies and invoices buckets if missing.
func InitBoltBuckets(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{companiesBucket, invoicesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// itob encodes an invoice id so bucket iteration follows id order.
func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
