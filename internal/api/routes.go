package api

import (
	"net/http"

	"github.com/JaimeStill/prism/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
) {
	routes.Register(
		mux,
		domain.Predictions.Handler().Routes(),
		domain.Batch.Routes(),
	)
}
