package server

import (
	chilogger "github.com/766b/chi-logger"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/usi-samples/usi-client-go/controllers"
	log "github.com/usi-samples/usi-client-go/logger"
)

// DoRoutes sets up the routes used by the server.
// First, it sets up the chi router using our middleware.
// Then it does the actual routing config.
func DoRoutes(api *controllers.UsiApi) chi.Router {
	r := chi.NewRouter()

	sentryMiddleware := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
	})

	r.Use(prometheusMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(chilogger.NewLogrusMiddleware("router", log.Log))
	r.Use(sentryMiddleware.Handle)

	r.Route("/api/usi/v1", func(r chi.Router) {
		r.Route("/", controllers.LubDub)
		r.Post("/create", api.Create())
		r.Post("/create-verify", api.CreateVerify())
		r.Post("/bulk-upload", api.BulkUpload())
		r.Get("/bulk-upload/{receipt}", api.BulkUploadRetrieve())
		r.Post("/bulk-verify", api.BulkVerify())
		r.Put("/contact-details/{usi}", api.UpdateContactDetails())
		r.Get("/document-types", api.DocumentTypes())
	})

	r.Route("/status", controllers.Status)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
