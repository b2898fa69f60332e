package server

import (
	"net/http"
	"runtime"

	"github.com/aristath/trading-dashboard/internal/events"
)

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := map[string]interface{}{
		"status": "running",
		"memory": map[string]interface{}{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
		"goroutines":     runtime.NumGoroutine(),
		"cached_reports": s.cache.Len(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleCacheClear drops every cached report so the next request
// recomputes from fresh data (the dashboard's refresh button).
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.cache.Clear()
	s.events.Emit(events.CacheCleared, "server", nil)

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
