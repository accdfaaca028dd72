package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"biztime/models"
)

const (
	invoiceTemplateName = "invoice_template.html"
	dateLayout          = "02-Jan-2006"
	pdfRenderTimeout    = 30 * time.Second
)

// BuildInvoicePDFData formats an invoice detail for the PDF template.
func BuildInvoicePDFData(inv *models.InvoiceDetail, now time.Time) models.InvoicePDFData {
	data := models.InvoicePDFData{
		Invoice:     inv,
		Description: "-",
		AddDate:     "-",
		PaidDate:    "-",
		Status:      "Unpaid",
		AmountWords: NumberToCurrencyWords(inv.Amt),
		GeneratedAt: now.UTC().Format(dateLayout + " 15:04 MST"),
	}
	if inv.Company.Description != nil && *inv.Company.Description != "" {
		data.Description = *inv.Company.Description
	}
	if !inv.AddDate.IsZero() {
		data.AddDate = inv.AddDate.Format(dateLayout)
	}
	if inv.PaidDate != nil {
		data.PaidDate = inv.PaidDate.Format(dateLayout)
	}
	if inv.Paid {
		data.Status = "Paid"
	}
	return data
}

// RenderInvoiceHTML executes templateDir/invoice_template.html for inv.
func RenderInvoiceHTML(templateDir string, inv *models.InvoiceDetail, now time.Time) ([]byte, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, invoiceTemplateName))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, BuildInvoicePDFData(inv, now)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChromePDFRenderer prints invoices to A4 PDFs with headless Chrome.
type ChromePDFRenderer struct {
	TemplateDir string
}

func (c *ChromePDFRenderer) RenderInvoice(ctx context.Context, inv *models.InvoiceDetail) ([]byte, error) {
	html, err := RenderInvoiceHTML(c.TemplateDir, inv, time.Now())
	if err != nil {
		return nil, err
	}
	return HTMLToPDF(ctx, html)
}

// HTMLToPDF loads html from a temp file and prints it.
func HTMLToPDF(ctx context.Context, html []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "invoice_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pdfRenderTimeout)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
