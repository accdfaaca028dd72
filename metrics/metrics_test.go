package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"biztime/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given a fresh metrics set", t, func() {
		m := metrics.New()

		Convey("Recorded requests are counted per label set", func() {
			m.RecordHTTPRequest("/companies", "GET", "200", 0.01)
			m.RecordHTTPRequest("/companies", "GET", "200", 0.02)
			m.RecordDatastoreError("/invoices")

			n, err := testutil.GatherAndCount(m.Registry(), "biztime_http_requests_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			n, err = testutil.GatherAndCount(m.Registry(), "biztime_datastore_errors_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})

		Convey("The handler exposes the registry", func() {
			m.RecordHTTPRequest("/invoices", "POST", "201", 0.005)
			w := httptest.NewRecorder()
			m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `biztime_http_requests_total{method="POST",route="/invoices",status="201"} 1`)
		})
	})
}
