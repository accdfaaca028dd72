package repository

import (
	"context"

	"biztime/models"
)

// DetailRepository composes an invoice with the company it references.
type DetailRepository struct {
	InvoiceRepo InvoiceRepository
	CompanyRepo CompanyRepository
}

func NewDetailRepository(invoiceRepo InvoiceRepository, companyRepo CompanyRepository) *DetailRepository {
	return &DetailRepository{
		InvoiceRepo: invoiceRepo,
		CompanyRepo: companyRepo,
	}
}

// GetInvoiceDetail looks up the invoice, then its company. The two reads are
// not atomic: a company deleted in between surfaces as a company not-found.
func (r *DetailRepository) GetInvoiceDetail(ctx context.Context, id int64) (*models.InvoiceDetail, error) {
	inv, err := r.InvoiceRepo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := r.CompanyRepo.GetCompany(ctx, inv.CompCode)
	if err != nil {
		return nil, err
	}
	return models.NewInvoiceDetail(inv, company), nil
}
