package repository

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"biztime/models"
)

// BoltCompanyRepo stores companies as JSON values keyed by code.
type BoltCompanyRepo struct {
	DB *bolt.DB
}

func NewBoltCompanyRepo(db *bolt.DB) *BoltCompanyRepo {
	return &BoltCompanyRepo{DB: db}
}

func (r *BoltCompanyRepo) ListCompanies(_ context.Context) ([]models.CompanySummary, error) {
	out := []models.CompanySummary{}
	err := r.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(companiesBucket).ForEach(func(_, v []byte) error {
			var c models.Company
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			out = append(out, models.CompanySummary{Code: c.Code, Name: c.Name})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BoltCompanyRepo) GetCompany(_ context.Context, code string) (*models.Company, error) {
	var c models.Company
	err := r.DB.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(companiesBucket).Get([]byte(code))
		if v == nil {
			return companyNotFound(code)
		}
		return json.Unmarshal(v, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BoltCompanyRepo) CreateCompany(_ context.Context, in *models.CompanyInput) (*models.Company, error) {
	if in.Code == nil {
		return nil, fmt.Errorf("%w: null value in column \"code\"", ErrConstraint)
	}
	if in.Name == nil {
		return nil, fmt.Errorf("%w: null value in column \"name\"", ErrConstraint)
	}
	c := models.Company{Code: *in.Code, Name: *in.Name, Description: in.Description}

	err := r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(companiesBucket)
		if b.Get([]byte(c.Code)) != nil {
			return fmt.Errorf("%w: duplicate company code %q", ErrConflict, c.Code)
		}
		if err := checkNameUnique(b, c.Code, c.Name); err != nil {
			return err
		}
		return putCompany(b, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BoltCompanyRepo) UpdateCompany(_ context.Context, code string, in *models.CompanyInput) (*models.Company, error) {
	var c models.Company
	err := r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(companiesBucket)
		if b.Get([]byte(code)) == nil {
			return companyNotFound(code)
		}
		if in.Name == nil {
			return fmt.Errorf("%w: null value in column \"name\"", ErrConstraint)
		}
		if err := checkNameUnique(b, code, *in.Name); err != nil {
			return err
		}
		c = models.Company{Code: code, Name: *in.Name, Description: in.Description}
		return putCompany(b, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCompany removes the company and, like ON DELETE CASCADE, its invoices.
func (r *BoltCompanyRepo) DeleteCompany(_ context.Context, code string) error {
	return r.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(companiesBucket)
		if b.Get([]byte(code)) == nil {
			return companyNotFound(code)
		}
		if err := b.Delete([]byte(code)); err != nil {
			return err
		}

		inv := tx.Bucket(invoicesBucket)
		var doomed [][]byte
		err := inv.ForEach(func(k, v []byte) error {
			var i models.Invoice
			if err := json.Unmarshal(v, &i); err != nil {
				return err
			}
			if i.CompCode == code {
				doomed = append(doomed, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range doomed {
			if err := inv.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func checkNameUnique(b *bolt.Bucket, code, name string) error {
	return b.ForEach(func(k, v []byte) error {
		if string(k) == code {
			return nil
		}
		var other models.Company
		if err := json.Unmarshal(v, &other); err != nil {
			return err
		}
		if other.Name == name {
			return fmt.Errorf("%w: duplicate company name %q", ErrConflict, name)
		}
		return nil
	})
}

func putCompany(b *bolt.Bucket, c *models.Company) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return b.Put([]byte(c.Code), data)
}
