package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	bolt "github.com/boltdb/bolt"
	. "github.com/smartystreets/goconvey/convey"

	"biztime/models"
	"biztime/repository"
)

func newTestBolt(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0600, nil)
	if err != nil {
		t.Fatalf("failed to open bolt: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repository.InitBoltBuckets(db); err != nil {
		t.Fatalf("failed to init buckets: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestBoltRepositories(t *testing.T) {
	Convey("Given empty bolt repositories", t, func() {
		db := newTestBolt(t)
		companies := repository.NewBoltCompanyRepo(db)
		invoices := repository.NewBoltInvoiceRepo(db)
		ctx := context.Background()

		Convey("Listing returns empty slices, not nil", func() {
			cs, err := companies.ListCompanies(ctx)
			So(err, ShouldBeNil)
			So(cs, ShouldNotBeNil)
			So(cs, ShouldBeEmpty)

			is, err := invoices.ListInvoices(ctx)
			So(err, ShouldBeNil)
			So(is, ShouldNotBeNil)
			So(is, ShouldBeEmpty)
		})

		Convey("When companies are created", func() {
			_, err := companies.CreateCompany(ctx, &models.CompanyInput{
				Code: strPtr("ibm"), Name: strPtr("IBM"), Description: strPtr("Big blue."),
			})
			So(err, ShouldBeNil)
			apple, err := companies.CreateCompany(ctx, &models.CompanyInput{
				Code: strPtr("apple"), Name: strPtr("Apple Computer"), Description: strPtr("Maker of OSX."),
			})
			So(err, ShouldBeNil)
			So(apple.Code, ShouldEqual, "apple")

			Convey("They list in code order", func() {
				cs, err := companies.ListCompanies(ctx)
				So(err, ShouldBeNil)
				So(cs, ShouldResemble, []models.CompanySummary{
					{Code: "apple", Name: "Apple Computer"},
					{Code: "ibm", Name: "IBM"},
				})
			})

			Convey("A duplicate code is a conflict", func() {
				_, err := companies.CreateCompany(ctx, &models.CompanyInput{
					Code: strPtr("apple"), Name: strPtr("Other"),
				})
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})

			Convey("A duplicate name is a conflict", func() {
				_, err := companies.CreateCompany(ctx, &models.CompanyInput{
					Code: strPtr("big"), Name: strPtr("IBM"),
				})
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})

			Convey("A missing name violates a constraint", func() {
				_, err := companies.CreateCompany(ctx, &models.CompanyInput{Code: strPtr("hp")})
				So(errors.Is(err, repository.ErrConstraint), ShouldBeTrue)
			})

			Convey("Update replaces name and description", func() {
				c, err := companies.UpdateCompany(ctx, "apple", &models.CompanyInput{Name: strPtr("Apple Inc.")})
				So(err, ShouldBeNil)
				So(c.Name, ShouldEqual, "Apple Inc.")
				So(c.Description, ShouldBeNil)

				got, err := companies.GetCompany(ctx, "apple")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, c)
			})

			Convey("Update of a missing company is not found", func() {
				_, err := companies.UpdateCompany(ctx, "hp", &models.CompanyInput{Name: strPtr("HP")})
				var nf *repository.NotFoundError
				So(errors.As(err, &nf), ShouldBeTrue)
				So(nf.Key, ShouldEqual, "hp")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And invoices are created", func() {
				first, err := invoices.CreateInvoice(ctx, "apple", 100)
				So(err, ShouldBeNil)
				So(first.ID, ShouldEqual, int64(1))
				So(first.Paid, ShouldBeFalse)
				So(first.PaidDate, ShouldBeNil)
				So(first.AddDate.IsZero(), ShouldBeFalse)

				_, err = invoices.CreateInvoice(ctx, "ibm", 400)
				So(err, ShouldBeNil)
				third, err := invoices.CreateInvoice(ctx, "apple", 300)
				So(err, ShouldBeNil)
				So(third.ID, ShouldEqual, int64(3))

				Convey("Ids per company are ascending", func() {
					ids, err := invoices.ListInvoiceIDs(ctx, "apple")
					So(err, ShouldBeNil)
					So(ids, ShouldResemble, []int64{1, 3})
				})

				Convey("An unknown company violates the foreign key", func() {
					_, err := invoices.CreateInvoice(ctx, "hp", 10)
					So(errors.Is(err, repository.ErrConstraint), ShouldBeTrue)
				})

				Convey("Decrement subtracts from the stored amount", func() {
					inv, err := invoices.DecrementAmount(ctx, 3, 50)
					So(err, ShouldBeNil)
					So(inv.Amt, ShouldEqual, 250.0)
				})

				Convey("Decrement below zero violates the amount check", func() {
					_, err := invoices.DecrementAmount(ctx, 1, 100)
					So(errors.Is(err, repository.ErrConstraint), ShouldBeTrue)
					inv, err := invoices.GetInvoice(ctx, 1)
					So(err, ShouldBeNil)
					So(inv.Amt, ShouldEqual, 100.0)
				})

				Convey("Deleting a company cascades to its invoices", func() {
					So(companies.DeleteCompany(ctx, "apple"), ShouldBeNil)
					is, err := invoices.ListInvoices(ctx)
					So(err, ShouldBeNil)
					So(is, ShouldResemble, []models.InvoiceSummary{{ID: 2, CompCode: "ibm"}})
				})

				Convey("Detail composes invoice and company", func() {
					details := repository.NewDetailRepository(invoices, companies)
					d, err := details.GetInvoiceDetail(ctx, 2)
					So(err, ShouldBeNil)
					So(d.Company.Code, ShouldEqual, "ibm")
					So(d.Amt, ShouldEqual, 400.0)
				})

				Convey("Deleting a missing invoice is not found", func() {
					err := invoices.DeleteInvoice(ctx, 99)
					So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				})
			})
		})
	})
}
