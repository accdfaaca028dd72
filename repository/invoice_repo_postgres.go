package repository

import (
	"context"
	"database/sql"
	"errors"

	"biztime/models"
)

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

type PostgresInvoiceRepo struct {
	DB *sql.DB
}

func NewPostgresInvoiceRepo(db *sql.DB) *PostgresInvoiceRepo {
	return &PostgresInvoiceRepo{DB: db}
}

func scanInvoice(row *sql.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.CompCode, &inv.Amt, &inv.Paid, &inv.AddDate, &inv.PaidDate)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PostgresInvoiceRepo) ListInvoices(ctx context.Context) ([]models.InvoiceSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, comp_code
		FROM invoices
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.InvoiceSummary{}
	for rows.Next() {
		var inv models.InvoiceSummary
		if err := rows.Scan(&inv.ID, &inv.CompCode); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *PostgresInvoiceRepo) ListInvoiceIDs(ctx context.Context, compCode string) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id
		FROM invoices
		WHERE comp_code = $1
		ORDER BY id
	`, compCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresInvoiceRepo) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoiceNotFound(id)
		}
		return nil, err
	}
	return inv, nil
}

func (r *PostgresInvoiceRepo) CreateInvoice(ctx context.Context, compCode string, amt float64) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING `+invoiceColumns,
		compCode, amt))
	if err != nil {
		return nil, classifyPQ(err)
	}
	return inv, nil
}

func (r *PostgresInvoiceRepo) DecrementAmount(ctx context.Context, id int64, delta float64) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, `
		UPDATE invoices
		SET amt = amt - $2
		WHERE id = $1
		RETURNING `+invoiceColumns,
		id, delta))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoiceNotFound(id)
		}
		return nil, classifyPQ(err)
	}
	return inv, nil
}

func (r *PostgresInvoiceRepo) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM invoices
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return invoiceNotFound(id)
	}
	return nil
}
