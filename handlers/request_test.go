package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"biztime/apperror"
	"biztime/repository"
)

func TestNonZeroAmount(t *testing.T) {
	Convey("nonZeroAmount", t, func() {
		cases := map[string]struct {
			want float64
			ok   bool
		}{
			`100`:    {100, true},
			`-5`:     {-5, true},
			`"12.5"`: {12.5, true},
			`" 7 "`:  {7, true},
			`0`:      {0, false},
			`"0"`:    {0, false},
			`null`:   {0, false},
			`true`:   {0, false},
			`"lots"`: {0, false},
			`[1]`:    {0, false},
			`"NaN"`:  {0, false},
			`"+Inf"`: {0, false},
		}
		for raw, c := range cases {
			got, ok := nonZeroAmount(json.RawMessage(raw))
			So(ok, ShouldEqual, c.ok)
			So(got, ShouldEqual, c.want)
		}

		Convey("An absent field is rejected", func() {
			_, ok := nonZeroAmount(nil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNonEmptyString(t *testing.T) {
	Convey("nonEmptyString", t, func() {
		s, ok := nonEmptyString(json.RawMessage(`"apple"`))
		So(ok, ShouldBeTrue)
		So(s, ShouldEqual, "apple")

		for _, raw := range []string{`""`, `null`, `12`, `false`} {
			_, ok := nonEmptyString(json.RawMessage(raw))
			So(ok, ShouldBeFalse)
		}
		_, ok = nonEmptyString(nil)
		So(ok, ShouldBeFalse)
	})
}

func TestDecodeBody(t *testing.T) {
	Convey("decodeBody", t, func() {
		var dst map[string]any

		Convey("accepts an object", func() {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
			So(decodeBody(r, &dst), ShouldBeNil)
			So(dst["a"], ShouldEqual, 1.0)
		})

		Convey("rejects empty, blank and null bodies", func() {
			for _, body := range []string{"", "   ", "null"} {
				r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
				err := decodeBody(r, &dst)
				So(apperror.StatusOf(err), ShouldEqual, http.StatusBadRequest)
				So(apperror.MessageOf(err), ShouldEqual, "Bad Request")
			}
		})

		Convey("rejects malformed JSON", func() {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))
			So(apperror.StatusOf(decodeBody(r, &dst)), ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestParseInvoiceID(t *testing.T) {
	Convey("parseInvoiceID", t, func() {
		r := httptest.NewRequest(http.MethodGet, "/invoices/42", nil)
		r.SetPathValue("id", "42")
		id, err := parseInvoiceID(r)
		So(err, ShouldBeNil)
		So(id, ShouldEqual, int64(42))

		r.SetPathValue("id", "4x")
		_, err = parseInvoiceID(r)
		So(apperror.MessageOf(err), ShouldEqual, "invalid invoice id: 4x")
	})
}

func TestTranslate(t *testing.T) {
	Convey("translate", t, func() {
		err := translate(&repository.NotFoundError{Entity: "invoice", Key: "7"})
		So(apperror.StatusOf(err), ShouldEqual, http.StatusNotFound)
		So(apperror.MessageOf(err), ShouldEqual, "Not found: 7")

		So(apperror.StatusOf(translate(repository.ErrConflict)), ShouldEqual, http.StatusInternalServerError)
	})
}
