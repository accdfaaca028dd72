package handlers

import (
	"encoding/json"
	"net/http"

	"biztime/apperror"
	"biztime/models"
	"biztime/repository"
)

type InvoiceHandler struct {
	Repo    repository.InvoiceRepository
	Details *repository.DetailRepository
}

type invoicesResponse struct {
	Invoices []models.InvoiceSummary `json:"invoices"`
}

type invoiceResponse struct {
	Invoice any `json:"invoice"`
}

type invoiceInput struct {
	CompCode json.RawMessage `json:"comp_code"`
	Amt      json.RawMessage `json:"amt"`
}

// ListInvoices handles GET /invoices.
func (h *InvoiceHandler) ListInvoices(r *http.Request) (*Response, error) {
	invoices, err := h.Repo.ListInvoices(r.Context())
	if err != nil {
		return nil, err
	}
	return OK(invoicesResponse{Invoices: invoices}), nil
}

// GetInvoice handles GET /invoices/{id}. The invoice must exist before its
// company is looked up; comp_code is replaced by the nested company.
func (h *InvoiceHandler) GetInvoice(r *http.Request) (*Response, error) {
	id, err := parseInvoiceID(r)
	if err != nil {
		return nil, err
	}
	detail, err := h.Details.GetInvoiceDetail(r.Context(), id)
	if err != nil {
		return nil, translate(err)
	}
	return OK(invoiceResponse{Invoice: detail}), nil
}

// CreateInvoice handles POST /invoices.
func (h *InvoiceHandler) CreateInvoice(r *http.Request) (*Response, error) {
	var in invoiceInput
	if err := decodeBody(r, &in); err != nil {
		return nil, err
	}
	compCode, ok := nonEmptyString(in.CompCode)
	if !ok {
		return nil, apperror.BadRequest("comp_code is required")
	}
	amt, ok := nonZeroAmount(in.Amt)
	if !ok {
		return nil, apperror.BadRequest("amt must be a non-zero number")
	}

	invoice, err := h.Repo.CreateInvoice(r.Context(), compCode, amt)
	if err != nil {
		return nil, err
	}
	return Created(invoiceResponse{Invoice: invoice}), nil
}

// UpdateInvoice handles PATCH /invoices/{id}. The body's amt is subtracted
// from the stored amount rather than replacing it.
func (h *InvoiceHandler) UpdateInvoice(r *http.Request) (*Response, error) {
	id, err := parseInvoiceID(r)
	if err != nil {
		return nil, err
	}
	var in invoiceInput
	if err := decodeBody(r, &in); err != nil {
		return nil, err
	}
	delta, ok := nonZeroAmount(in.Amt)
	if !ok {
		return nil, apperror.BadRequest("amt must be a non-zero number")
	}

	invoice, err := h.Repo.DecrementAmount(r.Context(), id, delta)
	if err != nil {
		return nil, translate(err)
	}
	return OK(invoiceResponse{Invoice: invoice}), nil
}

// DeleteInvoice handles DELETE /invoices/{id}.
func (h *InvoiceHandler) DeleteInvoice(r *http.Request) (*Response, error) {
	id, err := parseInvoiceID(r)
	if err != nil {
		return nil, err
	}
	if err := h.Repo.DeleteInvoice(r.Context(), id); err != nil {
		return nil, translate(err)
	}
	return OK(deletedResponse), nil
}
