package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
)

type PlayerHandler struct {
	adminService services.AdminService
	mediaService services.MediaService
}

func NewPlayerHandler(as services.AdminService, ms services.MediaService) *PlayerHandler {
	return &PlayerHandler{adminService: as, mediaService: ms}
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var input models.Player
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.adminService.CreatePlayer(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) ReplacePlayer(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input models.Player
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ID != "" && input.ID != playerID {
		badRequestResponse(w, r, errors.New("player id in body does not match URL"))
		return
	}
	input.ID = playerID

	player, err := h.adminService.ReplacePlayer(r.Context(), sid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeletePlayer(r.Context(), sid, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlayerHandler) UploadPlayerAvatar(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input, cleanup, err := readUpload(w, r, "avatar")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	player, err := h.mediaService.UploadPlayerAvatar(r.Context(), sid, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
