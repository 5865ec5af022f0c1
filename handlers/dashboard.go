package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-dashboard/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// GetDashboard godoc
// @Summary Данные дашборда
// @Tags dashboard
// @Description Возвращает все данные вместе с производными значениями для отрисовки (ширины полос, радар, классы аватаров, победители).
// @Produce json
// @Success 200 {object} models.DashboardView
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.dashboardService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.dashboardService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.dashboardService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, players, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.dashboardService.GetPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, player, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) ListBrackets(w http.ResponseWriter, r *http.Request) {
	brackets, err := h.dashboardService.ListBrackets(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, brackets, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	bracketID, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	bracket, err := h.dashboardService.GetBracket(r.Context(), bracketID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
