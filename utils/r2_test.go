package utils

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"biztime/handlers"
)

var _ handlers.DocumentStore = (*ObjectStore)(nil)

func TestObjectStore(t *testing.T) {
	Convey("Given object store settings", t, func() {
		Convey("Public URLs join base and escaped key", func() {
			So(PublicObjectURL("https://files.example.com/", "invoice_3.pdf"), ShouldEqual, "https://files.example.com/invoice_3.pdf")
			So(PublicObjectURL("https://files.example.com", "a b.pdf"), ShouldEqual, "https://files.example.com/a%20b.pdf")
		})

		Convey("A bucket and public URL are required", func() {
			_, err := NewObjectStore(context.Background(), ObjectStoreConfig{Bucket: "invoices"})
			So(err, ShouldNotBeNil)
		})

		Convey("A complete config builds a client without network access", func() {
			s, err := NewObjectStore(context.Background(), ObjectStoreConfig{
				Bucket:          "invoices",
				Endpoint:        "https://account.r2.cloudflarestorage.com",
				AccessKeyID:     "key",
				SecretAccessKey: "secret",
				PublicURL:       "https://files.example.com",
			})
			So(err, ShouldBeNil)
			So(s, ShouldNotBeNil)
		})
	})
}
