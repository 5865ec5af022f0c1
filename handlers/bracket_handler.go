package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
)

type BracketHandler struct {
	adminService   services.AdminService
	bracketService services.BracketService
}

func NewBracketHandler(as services.AdminService, bs services.BracketService) *BracketHandler {
	return &BracketHandler{adminService: as, bracketService: bs}
}

// GenerateBracket godoc
// @Summary Сгенерировать сетку
// @Tags brackets
// @Description Создаёт сетку из упорядоченного списка команд: single_elimination (по умолчанию) или round_robin.
// @Accept json
// @Produce json
// @Param body body services.GenerateBracketInput true "Название, формат и команды"
// @Success 201 {object} map[string]interface{} "Созданная сетка"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Режим редактирования выключен"
// @Failure 409 {object} map[string]string "ID уже занят"
// @Security BearerAuth
// @Router /brackets/generate [post]
func (h *BracketHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var input services.GenerateBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GenerateBracket(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) CreateBracket(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var input models.Bracket
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.adminService.CreateBracket(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) ReplaceBracket(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	bracketID, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.Bracket
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ID != "" && input.ID != bracketID {
		badRequestResponse(w, r, errors.New("bracket id in body does not match URL"))
		return
	}
	input.ID = bracketID

	bracket, err := h.adminService.ReplaceBracket(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) DeleteBracket(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	bracketID, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeleteBracket(r.Context(), sid, bracketID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
