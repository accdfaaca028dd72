package models

type Company struct {
	Code        string  `json:"code" bson:"_id" db:"code"`
	Name        string  `json:"name" bson:"name" db:"name"`
	Description *string `json:"description" bson:"description" db:"description"`
}

// CompanySummary is the list projection of a company.
type CompanySummary struct {
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// CompanyDetail is a company together with the ids of its invoices.
type CompanyDetail struct {
	Company
	Invoices []int64 `json:"invoices"`
}

// CompanyInput holds company fields as the client sent them; nil means omitted.
type CompanyInput struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
