// Package routes is the HTTP application shell: it mounts the resource
// handlers, applies middleware and translates handler errors into the JSON
// error envelope.
package routes

import (
	"net/http"
	"strconv"
	"time"

	"biztime/apperror"
	"biztime/config"
	"biztime/handlers"
	"biztime/logger"
	"biztime/metrics"
	"biztime/repository"
)

const (
	unmatchedRoute  = "unmatched"
	catchAllPattern = "/"
)

// Dependencies are the collaborators the App is built from.
type Dependencies struct {
	DB        handlers.Pinger
	Companies repository.CompanyRepository
	Invoices  repository.InvoiceRepository
	Renderer  handlers.InvoiceRenderer
	Store     handlers.DocumentStore // optional
}

// App owns the handler tables for one process. It is constructed once at
// startup and holds no per-request state.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Metrics

	companies *handlers.CompanyHandler
	invoices  *handlers.InvoiceHandler
	pdf       *handlers.PDFHandler
	health    *handlers.HealthHandler
}

func NewApp(cfg *config.Config, log logger.Logger, m *metrics.Metrics, deps Dependencies) *App {
	details := repository.NewDetailRepository(deps.Invoices, deps.Companies)
	return &App{
		cfg:     cfg,
		log:     log.Named("http"),
		metrics: m,
		companies: &handlers.CompanyHandler{
			Repo:        deps.Companies,
			InvoiceRepo: deps.Invoices,
		},
		invoices: &handlers.InvoiceHandler{
			Repo:    deps.Invoices,
			Details: details,
		},
		pdf: &handlers.PDFHandler{
			Details:  details,
			Renderer: deps.Renderer,
			Store:    deps.Store,
		},
		health: &handlers.HealthHandler{DB: deps.DB},
	}
}

// Handler returns the root http.Handler with every route mounted.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	// Company routes
	a.handle(mux, "GET /companies", a.companies.ListCompanies)
	a.handle(mux, "GET /companies/{code}", a.companies.GetCompany)
	a.handle(mux, "POST /companies", a.companies.CreateCompany)
	a.handle(mux, "PUT /companies/{code}", a.companies.UpdateCompany)
	a.handle(mux, "DELETE /companies/{code}", a.companies.DeleteCompany)

	// Invoice routes
	a.handle(mux, "GET /invoices", a.invoices.ListInvoices)
	a.handle(mux, "GET /invoices/{id}", a.invoices.GetInvoice)
	a.handle(mux, "GET /invoices/{id}/pdf", a.pdf.InvoicePDF)
	a.handle(mux, "POST /invoices", a.invoices.CreateInvoice)
	a.handle(mux, "PATCH /invoices/{id}", a.invoices.UpdateInvoice)
	a.handle(mux, "DELETE /invoices/{id}", a.invoices.DeleteInvoice)

	// Operational routes
	a.handle(mux, "GET /healthz", a.health.Health)
	mux.Handle("GET /metrics", a.metrics.Handler())

	// Anything unmatched, including a known path with another method.
	mux.HandleFunc(catchAllPattern, a.serve(unmatchedRoute, func(*http.Request) (*handlers.Response, error) {
		return nil, apperror.NotFound("")
	}))

	return withCORS(mux, handlers.RecoverWrapper(a.log, withRequestLog(a.log, mux)))
}

func (a *App) handle(mux *http.ServeMux, pattern string, fn handlers.EndpointFunc) {
	mux.HandleFunc(pattern, a.serve(pattern, fn))
}

// serve runs fn and writes its response, or translates its error into
// {"error": {"message", "status"}} with the error's status code.
func (a *App) serve(route string, fn handlers.EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		resp, err := fn(r)
		var status int
		if err != nil {
			status = apperror.StatusOf(err)
			a.logError(r, status, err)
			if status >= http.StatusInternalServerError {
				a.metrics.RecordDatastoreError(route)
			}
			handlers.WriteError(w, status, apperror.MessageOf(err))
		} else {
			if resp.Status == 0 {
				resp.Status = http.StatusOK
			}
			status = resp.Status
			resp.Write(w)
		}

		a.metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), time.Since(start).Seconds())
	}
}

func (a *App) logError(r *http.Request, status int, err error) {
	if a.cfg.IsTest() {
		return
	}
	a.log.Error(r.Context(), "request failed",
		logger.Int("status", status),
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.Error(err),
	)
}
