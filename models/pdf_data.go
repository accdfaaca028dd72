package models

type InvoicePDFData struct {
	Invoice     *InvoiceDetail
	Description string // company description or "-"
	AddDate     string // formatted add date
	PaidDate    string // formatted paid date or "-"
	Status      string // Paid | Unpaid
	AmountWords string
	GeneratedAt string
}
