package metrics

import (
	"net/http"
	"time"

	"contact-sheet/internal/logging"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve starts the optional scrape endpoint on the given port. The server
// runs in a background goroutine; the caller shuts it down with
// (*http.Server).Shutdown or Close when the run ends.
func Serve(port string) *http.Server {
	InitializeStatuses()

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Metrics endpoint listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn("Metrics server error: %v", err)
		}
	}()

	return srv
}
