package models

import "time"

type Invoice struct {
	ID       int64      `json:"id" bson:"_id" db:"id"`
	CompCode string     `json:"comp_code" bson:"comp_code" db:"comp_code"`
	Amt      float64    `json:"amt" bson:"amt" db:"amt"`
	Paid     bool       `json:"paid" bson:"paid" db:"paid"`
	AddDate  time.Time  `json:"add_date" bson:"add_date" db:"add_date"`
	PaidDate *time.Time `json:"paid_date" bson:"paid_date" db:"paid_date"`
}

// InvoiceSummary is the list projection of an invoice.
type InvoiceSummary struct {
	ID       int64  `json:"id" db:"id"`
	CompCode string `json:"comp_code" db:"comp_code"`
}

// InvoiceDetail replaces comp_code with the referenced company.
type InvoiceDetail struct {
	ID       int64      `json:"id"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
	Company  Company    `json:"company"`
}

// NewInvoiceDetail composes an invoice with its company.
func NewInvoiceDetail(inv *Invoice, company *Company) *InvoiceDetail {
	return &InvoiceDetail{
		ID:       inv.ID,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
		Company:  *company,
	}
}
