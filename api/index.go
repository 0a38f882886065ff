package handler

import (
	"net/http"
	"shareit/config"
	"shareit/di"
	"shareit/shared/logger"
	"sync"
)

var (
	service http.Handler
	once    sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the first request only.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
