package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"biztime/db"
	"biztime/db/postgres"
	"biztime/models"
	"biztime/repository"
)

const postgresFixture = `
	TRUNCATE companies, invoices RESTART IDENTITY CASCADE;

	INSERT INTO companies
	VALUES ('apple', 'Apple Computer', 'Maker of OSX.'),
	       ('ibm', 'IBM', 'Big blue.');

	INSERT INTO invoices (comp_code, amt, paid, paid_date)
	VALUES ('apple', 100, false, null),
	       ('apple', 200, false, null),
	       ('apple', 300, true, '2018-01-01'),
	       ('ibm', 400, false, null);
`

// newTestPostgres connects to BIZTIME_TEST_POSTGRES_URL and applies the
// migrations. The test is skipped when no database is configured.
func newTestPostgres(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("BIZTIME_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("BIZTIME_TEST_POSTGRES_URL not set")
	}
	if err := db.RunMigrations(url, "../db/migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pg := postgres.NewPostgresDB(url)
	if err := pg.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { pg.Disconnect() })
	return pg.Conn
}

func TestPostgresRepositories(t *testing.T) {
	conn := newTestPostgres(t)

	Convey("Given seeded postgres repositories", t, func() {
		_, err := conn.Exec(postgresFixture)
		So(err, ShouldBeNil)

		companies := repository.NewPostgresCompanyRepo(conn)
		invoices := repository.NewPostgresInvoiceRepo(conn)
		ctx := context.Background()

		Convey("Companies list in code order", func() {
			cs, err := companies.ListCompanies(ctx)
			So(err, ShouldBeNil)
			So(cs, ShouldResemble, []models.CompanySummary{
				{Code: "apple", Name: "Apple Computer"},
				{Code: "ibm", Name: "IBM"},
			})
		})

		Convey("Invoice ids for a company ascend", func() {
			ids, err := invoices.ListInvoiceIDs(ctx, "apple")
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int64{1, 2, 3})
		})

		Convey("Paid invoices carry their paid date", func() {
			inv, err := invoices.GetInvoice(ctx, 3)
			So(err, ShouldBeNil)
			So(inv.Paid, ShouldBeTrue)
			So(inv.PaidDate, ShouldNotBeNil)
			So(inv.PaidDate.Format("2006-01-02"), ShouldEqual, "2018-01-01")
		})

		Convey("A missing company is not found", func() {
			_, err := companies.GetCompany(ctx, "microsoft")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("A duplicate code is a conflict", func() {
			code, name := "apple", "Apple Again"
			_, err := companies.CreateCompany(ctx, &models.CompanyInput{Code: &code, Name: &name})
			So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
		})

		Convey("An unknown comp_code violates the foreign key", func() {
			_, err := invoices.CreateInvoice(ctx, "microsoft", 10)
			So(errors.Is(err, repository.ErrConstraint), ShouldBeTrue)
		})

		Convey("New invoices continue the id sequence", func() {
			inv, err := invoices.CreateInvoice(ctx, "ibm", 500)
			So(err, ShouldBeNil)
			So(inv.ID, ShouldEqual, int64(5))
			So(inv.Paid, ShouldBeFalse)
			So(inv.PaidDate, ShouldBeNil)
		})

		Convey("Decrementing subtracts from the stored amount", func() {
			inv, err := invoices.DecrementAmount(ctx, 3, 50)
			So(err, ShouldBeNil)
			So(inv.Amt, ShouldEqual, 250.0)

			inv, err = invoices.GetInvoice(ctx, 3)
			So(err, ShouldBeNil)
			So(inv.Amt, ShouldEqual, 250.0)
		})

		Convey("Decrementing to zero violates the amount check", func() {
			_, err := invoices.DecrementAmount(ctx, 1, 100)
			So(errors.Is(err, repository.ErrConstraint), ShouldBeTrue)

			inv, err := invoices.GetInvoice(ctx, 1)
			So(err, ShouldBeNil)
			So(inv.Amt, ShouldEqual, 100.0)
		})

		Convey("Decrementing a missing invoice is not found", func() {
			_, err := invoices.DecrementAmount(ctx, 99, 5)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Updating replaces name and description", func() {
			name := "Apple Inc."
			c, err := companies.UpdateCompany(ctx, "apple", &models.CompanyInput{Name: &name})
			So(err, ShouldBeNil)
			So(c.Name, ShouldEqual, "Apple Inc.")
			So(c.Description, ShouldBeNil)
		})

		Convey("Updating a missing company is not found", func() {
			name := "Microsoft"
			_, err := companies.UpdateCompany(ctx, "microsoft", &models.CompanyInput{Name: &name})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Deleting a company cascades to its invoices", func() {
			So(companies.DeleteCompany(ctx, "ibm"), ShouldBeNil)
			_, err := invoices.GetInvoice(ctx, 4)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			err = companies.DeleteCompany(ctx, "ibm")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Deleting an invoice removes it once", func() {
			So(invoices.DeleteInvoice(ctx, 2), ShouldBeNil)
			ids, err := invoices.ListInvoiceIDs(ctx, "apple")
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int64{1, 3})

			err = invoices.DeleteInvoice(ctx, 2)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
