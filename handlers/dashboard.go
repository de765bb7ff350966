package handlers

import (
	"net/http"

	"mediacatalog/models"
	"mediacatalog/services"
)

// DashboardHandler serves the dashboard endpoint.
type DashboardHandler struct {
	dashboard services.DashboardService
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Aggregated catalog and storage metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DashboardStats}
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Dashboard stats retrieved", stats))
}
