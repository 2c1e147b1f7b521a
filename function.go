// Package companynews exposes the company news API as a Cloud Function.
package companynews

import (
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/company-news-api/internal/config"
	"github.com/pep299/company-news-api/internal/handlers"
	"github.com/pep299/company-news-api/internal/telemetry"
	"github.com/pep299/company-news-api/internal/transport/response"
)

// FunctionName is the registered Cloud Functions entry point
const FunctionName = "CompanyNews"

var (
	routerOnce sync.Once
	router     http.Handler
	routerErr  error
)

func init() {
	functions.HTTP(FunctionName, CompanyNews)
}

// CompanyNews serves every API route from a single function instance
func CompanyNews(w http.ResponseWriter, r *http.Request) {
	logger := log.New(funcframework.LogWriter(r.Context()), "", 0)

	routerOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			routerErr = err
			return
		}
		if _, err := telemetry.Setup(cfg.TelemetryConfig()); err != nil {
			routerErr = err
			return
		}
		logger.Printf("✅ Initialized %s %s", cfg.AppName, cfg.AppVersion)
		router = handlers.NewServer(cfg).Handler()
	})

	if routerErr != nil {
		logger.Printf("❌ Failed to initialize: %v", routerErr)
		response.WriteInternalError(w, "service is misconfigured")
		return
	}

	router.ServeHTTP(w, r)
}
