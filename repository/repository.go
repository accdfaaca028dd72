package repository

import (
	"context"
	"errors"
	"strconv"

	"biztime/models"
)

var (
	// ErrNotFound is returned when a lookup by primary key matches no rows.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
	// ErrConstraint is returned for not-null, foreign key and check violations.
	ErrConstraint = errors.New("constraint violation")
)

// NotFoundError names the entity and key a lookup failed to match.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string { return e.Entity + " " + e.Key + ": not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func companyNotFound(code string) error {
	return &NotFoundError{Entity: "company", Key: code}
}

func invoiceNotFound(id int64) error {
	return &NotFoundError{Entity: "invoice", Key: strconv.FormatInt(id, 10)}
}

type CompanyRepository interface {
	ListCompanies(ctx context.Context) ([]models.CompanySummary, error)
	GetCompany(ctx context.Context, code string) (*models.Company, error)
	CreateCompany(ctx context.Context, in *models.CompanyInput) (*models.Company, error)
	// UpdateCompany replaces name and description; nil fields are stored as null.
	UpdateCompany(ctx context.Context, code string, in *models.CompanyInput) (*models.Company, error)
	DeleteCompany(ctx context.Context, code string) error
}

type InvoiceRepository interface {
	ListInvoices(ctx context.Context) ([]models.InvoiceSummary, error)
	// ListInvoiceIDs returns the ids of a company's invoices in ascending order.
	ListInvoiceIDs(ctx context.Context, compCode string) ([]int64, error)
	GetInvoice(ctx context.Context, id int64) (*models.Invoice, error)
	CreateInvoice(ctx context.Context, compCode string, amt float64) (*models.Invoice, error)
	// DecrementAmount sets amt = amt - delta and returns the updated row.
	DecrementAmount(ctx context.Context, id int64, delta float64) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
}
