package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"biztime/models"
	"biztime/repository"
)

// InvoiceRenderer turns an invoice detail into PDF bytes.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, inv *models.InvoiceDetail) ([]byte, error)
}

// DocumentStore persists a rendered document and returns its URL.
type DocumentStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type PDFHandler struct {
	Details  *repository.DetailRepository
	Renderer InvoiceRenderer
	// Store is optional; without it the PDF is returned inline.
	Store DocumentStore
}

type pdfUploadResponse struct {
	InvoiceID int64  `json:"invoice_id"`
	File      string `json:"file"`
}

// InvoicePDF handles GET /invoices/{id}/pdf.
func (h *PDFHandler) InvoicePDF(r *http.Request) (*Response, error) {
	id, err := parseInvoiceID(r)
	if err != nil {
		return nil, err
	}
	detail, err := h.Details.GetInvoiceDetail(r.Context(), id)
	if err != nil {
		return nil, translate(err)
	}

	pdf, err := h.Renderer.RenderInvoice(r.Context(), detail)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	if h.Store == nil {
		return &Response{Status: http.StatusOK, ContentType: "application/pdf", Raw: pdf}, nil
	}

	filename := fmt.Sprintf("invoice_%d_%d.pdf", id, time.Now().Unix())
	url, err := h.Store.Upload(r.Context(), filename, "application/pdf", pdf)
	if err != nil {
		return nil, err
	}
	return OK(pdfUploadResponse{InvoiceID: id, File: url}), nil
}
