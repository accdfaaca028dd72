package repository

import (
	"context"
	"database/sql"
	"errors"

	"biztime/models"
)

type PostgresCompanyRepo struct {
	DB *sql.DB
}

func NewPostgresCompanyRepo(db *sql.DB) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{DB: db}
}

func (r *PostgresCompanyRepo) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT code, name
		FROM companies
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CompanySummary{}
	for rows.Next() {
		var c models.CompanySummary
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCompanyRepo) GetCompany(ctx context.Context, code string) (*models.Company, error) {
	c := &models.Company{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT code, name, description
		FROM companies
		WHERE code = $1
	`, code).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companyNotFound(code)
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresCompanyRepo) CreateCompany(ctx context.Context, in *models.CompanyInput) (*models.Company, error) {
	c := &models.Company{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description
	`, in.Code, in.Name, in.Description).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		return nil, classifyPQ(err)
	}
	return c, nil
}

func (r *PostgresCompanyRepo) UpdateCompany(ctx context.Context, code string, in *models.CompanyInput) (*models.Company, error) {
	c := &models.Company{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE companies
		SET name = $2, description = $3
		WHERE code = $1
		RETURNING code, name, description
	`, code, in.Name, in.Description).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companyNotFound(code)
		}
		return nil, classifyPQ(err)
	}
	return c, nil
}

func (r *PostgresCompanyRepo) DeleteCompany(ctx context.Context, code string) error {
	var deleted string
	err := r.DB.QueryRowContext(ctx, `
		DELETE FROM companies
		WHERE code = $1
		RETURNING code
	`, code).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return companyNotFound(code)
		}
		return err
	}
	return nil
}
