package repository

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"biztime/models"
)

// BoltInvoiceRepo stores invoices as JSON values keyed by big-endian id.
type BoltInvoiceRepo struct {
	DB *bolt.DB
}

func NewBoltInvoiceRepo(db *bolt.DB) *BoltInvoiceRepo {
	return &BoltInvoiceRepo{DB: db}
}

func (r *BoltInvoiceRepo) each(fn func(inv *models.Invoice) error) error {
	return r.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(invoicesBucket).ForEach(func(_, v []byte) error {
			var inv models.Invoice
			if err := json.Unmarshal(v, &inv); err != nil {
				return err
			}
			return fn(&inv)
		})
	})
}

func (r *BoltInvoiceRepo) ListInvoices(_ context.Context) ([]models.InvoiceSummary, error) {
	out := []models.InvoiceSummary{}
	err := r.each(func(inv *models.Invoice) error {
		out = append(out, models.InvoiceSummary{ID: inv.ID, CompCode: inv.CompCode})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BoltInvoiceRepo) ListInvoiceIDs(_ context.Context, compCode string) ([]int64, error) {
	ids := []int64{}
	err := r.each(func(inv *models.Invoice) error {
		if inv.CompCode == compCode {
			ids = append(ids, inv.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BoltInvoiceRepo) GetInvoice(_ context.Context, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(invoicesBucket).Get(itob(id))
		if v == nil {
			return invoiceNotFound(id)
		}
		return json.Unmarshal(v, &inv)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BoltInvoiceRepo) CreateInvoice(_ context.Context, compCode string, amt float64) (*models.Invoice, error) {
	if amt <= 0 {
		return nil, fmt.Errorf("%w: amt must be positive", ErrConstraint)
	}
	var inv models.Invoice
	err := r.DB.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(companiesBucket).Get([]byte(compCode)) == nil {
			return fmt.Errorf("%w: company %q does not exist", ErrConstraint, compCode)
		}
		b := tx.Bucket(invoicesBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		inv = models.Invoice{
			ID:       int64(seq),
			CompCode: compCode,
			Amt:      amt,
			AddDate:  today(),
		}
		return putInvoice(b, &inv)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BoltInvoiceRepo) DecrementAmount(_ context.Context, id int64, delta float64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(invoicesBucket)
		v := b.Get(itob(id))
		if v == nil {
			return invoiceNotFound(id)
		}
		if err := json.Unmarshal(v, &inv); err != nil {
			return err
		}
		inv.Amt -= delta
		if inv.Amt <= 0 {
			return fmt.Errorf("%w: amt must be positive", ErrConstraint)
		}
		return putInvoice(b, &inv)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BoltInvoiceRepo) DeleteInvoice(_ context.Context, id int64) error {
	return r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(invoicesBucket)
		if b.Get(itob(id)) == nil {
			return invoiceNotFound(id)
		}
		return b.Delete(itob(id))
	})
}

// PutInvoice writes inv as-is, keeping the id sequence ahead of inv.ID.
// It is used to load fixtures with explicit paid state.
func (r *BoltInvoiceRepo) PutInvoice(inv *models.Invoice) error {
	return r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(invoicesBucket)
		if uint64(inv.ID) > b.Sequence() {
			if err := b.SetSequence(uint64(inv.ID)); err != nil {
				return err
			}
		}
		return putInvoice(b, inv)
	})
}

func putInvoice(b *bolt.Bucket, inv *models.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	return b.Put(itob(inv.ID), data)
}
