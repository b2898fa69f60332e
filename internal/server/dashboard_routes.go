package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/aristath/trading-dashboard/internal/modules/charts"
	"github.com/aristath/trading-dashboard/internal/modules/export"
	"github.com/aristath/trading-dashboard/internal/modules/metrics"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// setupDashboardRoutes wires the summary, metrics, charts and export
// modules under /api/summary/{kind}.
func (s *Server) setupDashboardRoutes(r chi.Router) {
	// Data source backed by the trading database
	summaryRepo := summary.NewRepository(s.db.Conn(), s.log)

	// Metrics service (engine + cache)
	metricsService := metrics.NewService(summaryRepo, s.cache, s.events, s.log)

	// Chart and export services sit on top of the metrics service
	chartsService := charts.NewService(metricsService, s.log)
	exportService := export.NewService(metricsService, s.log)

	// Handlers
	summaryHandler := summary.NewHandler(summaryRepo, s.log)
	metricsHandler := metrics.NewHandler(metricsService, s.log)
	chartsHandler := charts.NewHandler(chartsService, s.log)
	exportHandler := export.NewHandler(exportService, s.events, s.log)

	r.Route("/summary/{kind}", func(r chi.Router) {
		// Filtered record table (dashboard history view)
		r.Get("/", summaryHandler.HandleGetRecords)

		// Full performance report
		r.Get("/metrics", metricsHandler.HandleGetReport)

		// Chart data
		r.Route("/charts", func(r chi.Router) {
			r.Get("/equity", chartsHandler.HandleGetEquity)
			r.Get("/distribution", chartsHandler.HandleGetDistribution)
			r.Get("/performance", chartsHandler.HandleGetPerformance)
		})

		// CSV download
		r.Get("/export", exportHandler.HandleExportCSV)
	})
}
