package handlers

import (
	"net/http"

	"biztime/models"
	"biztime/repository"
)

type CompanyHandler struct {
	Repo        repository.CompanyRepository
	InvoiceRepo repository.InvoiceRepository
}

type companiesResponse struct {
	Companies []models.CompanySummary `json:"companies"`
}

type companyResponse struct {
	Company any `json:"company"`
}

// ListCompanies handles GET /companies.
func (h *CompanyHandler) ListCompanies(r *http.Request) (*Response, error) {
	companies, err := h.Repo.ListCompanies(r.Context())
	if err != nil {
		return nil, err
	}
	return OK(companiesResponse{Companies: companies}), nil
}

// GetCompany handles GET /companies/{code}, attaching the company's invoice ids.
func (h *CompanyHandler) GetCompany(r *http.Request) (*Response, error) {
	code := r.PathValue("code")
	company, err := h.Repo.GetCompany(r.Context(), code)
	if err != nil {
		return nil, translate(err)
	}
	ids, err := h.InvoiceRepo.ListInvoiceIDs(r.Context(), code)
	if err != nil {
		return nil, err
	}
	return OK(companyResponse{Company: models.CompanyDetail{Company: *company, Invoices: ids}}), nil
}

// CreateCompany handles POST /companies. Individual fields are not checked
// here; missing ones fail at the datastore.
func (h *CompanyHandler) CreateCompany(r *http.Request) (*Response, error) {
	var in models.CompanyInput
	if err := decodeBody(r, &in); err != nil {
		return nil, err
	}
	company, err := h.Repo.CreateCompany(r.Context(), &in)
	if err != nil {
		return nil, err
	}
	return Created(companyResponse{Company: company}), nil
}

// UpdateCompany handles PUT /companies/{code}. Name and description are
// both replaced; omitted fields become null.
func (h *CompanyHandler) UpdateCompany(r *http.Request) (*Response, error) {
	var in models.CompanyInput
	if err := decodeBody(r, &in); err != nil {
		return nil, err
	}
	company, err := h.Repo.UpdateCompany(r.Context(), r.PathValue("code"), &in)
	if err != nil {
		return nil, translate(err)
	}
	return OK(companyResponse{Company: company}), nil
}

// DeleteCompany handles DELETE /companies/{code}.
func (h *CompanyHandler) DeleteCompany(r *http.Request) (*Response, error) {
	if err := h.Repo.DeleteCompany(r.Context(), r.PathValue("code")); err != nil {
		return nil, translate(err)
	}
	return OK(deletedResponse), nil
}
